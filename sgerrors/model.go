package sgerrors

import (
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

/*
ErrorType defines a kind of error the request core can return. Each ErrorType
should have a unique Name and Code.

Codes 2000-2999 are validation failures, 3000-3999 are encoding failures and
4000-4999 are raised while dispatching a request.

Since kinds are declared as pointers, the underlying fields of this struct are
private and accessed through functions to protect against accidental mutation by
other packages. Define new kinds using NewErrorType().
*/
type ErrorType struct {
	// Unique human-readable name of the kind.
	name string

	// Unique number identifying the kind.
	code int
}

// NewErrorType returns a new error kind definition.
func NewErrorType(name string, code int) *ErrorType {
	return &ErrorType{
		name: name,
		code: code,
	}
}

// New returns an error instance of this kind.
func (errorType *ErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *Error {
	return &Error{
		ErrorType:   errorType,
		Message:     message,
		ID:          uuid.NewV4(),
		ErrorData:   errorData,
		sourceErr:   source,
		sourceStack: debug.Stack(),
		frame:       xerrors.Caller(1),
	}
}

// Newf returns an error instance of this kind with a formatted message and no data.
func (errorType *ErrorType) Newf(format string, args ...interface{}) *Error {
	err := errorType.New(fmt.Sprintf(format, args...), nil, nil)
	err.frame = xerrors.Caller(1)
	return err
}

// Name is the unique human-readable name of the kind.
func (errorType *ErrorType) Name() string {
	return errorType.name
}

// Code is the unique number identifying the kind.
func (errorType *ErrorType) Code() int {
	return errorType.code
}

// Allows the kind itself to be a valid error, so it can be used as an errors.Is
// target.
func (errorType *ErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.code) + ")"
}

// Error is a specific error instance.
type Error struct {
	// The kind of error we are returning.
	*ErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error instance, useful when correlating logs.
	ID uuid.UUID

	// A string / any mapping of data related to the error, such as the offending
	// address of a DuplicateRecipient.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is stored
	// here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// IsType returns true if the kind of this error is errorType.
func (sgError *Error) IsType(errorType *ErrorType) bool {
	return sgError.ErrorType.code == errorType.code
}

// Is reports whether target is this error's kind, or another error of the same kind.
func (sgError *Error) Is(target error) bool {
	switch typed := target.(type) {
	case *ErrorType:
		return sgError.IsType(typed)
	case *Error:
		return sgError.IsType(typed.ErrorType)
	}
	return false
}

// Error string to conform to builtin error interface.
func (sgError *Error) Error() string {
	return sgError.ErrorType.Error() + " - " + sgError.Message
}

// Unwrap returns the source error, if any.
func (sgError *Error) Unwrap() error {
	return sgError.sourceErr
}

// Format prints the error, with the creation frame when formatted with %+v.
func (sgError *Error) Format(state fmt.State, verb rune) {
	xerrors.FormatError(sgError, state, verb)
}

// FormatError implements xerrors.Formatter.
func (sgError *Error) FormatError(printer xerrors.Printer) error {
	printer.Print(sgError.Error())
	sgError.frame.Format(printer)
	return sgError.sourceErr
}

// Data fetches a single ErrorData value.
func (sgError *Error) Data(key string) (interface{}, bool) {
	if sgError.ErrorData == nil {
		return nil, false
	}
	value, ok := sgError.ErrorData[key]
	return value, ok
}

// LogMessage is a more verbose error message that includes the debug.Stack() and
// source error information. It is not part of Error() since callers may surface
// Error() to end users.
func (sgError *Error) LogMessage() string {
	return fmt.Sprint(
		"\nMESSAGE: ",
		sgError.Error(),
		"\nORIGINAL: ",
		sgError.sourceErr,
		"\nSTACK:\n",
		string(sgError.sourceStack),
	)
}

// KindOf returns the kind of err if err is, or wraps, an *Error.
func KindOf(err error) (*ErrorType, bool) {
	var sgError *Error
	if xerrors.As(err, &sgError) {
		return sgError.ErrorType, true
	}
	return nil, false
}
