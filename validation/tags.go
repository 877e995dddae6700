package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/neone/sendgrid-go/sgerrors"
	"golang.org/x/xerrors"
)

// Process-wide validator. validator.Validate caches struct metadata and is safe for
// concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the `validate` struct tags of value. Failures are reported as
// sgerrors.InvalidParameter, naming every offending field.
func Struct(value interface{}) error {
	return convert(validate.Struct(value), sgerrors.InvalidParameter)
}

// StructAs is Struct with failures reported as kind.
func StructAs(value interface{}, kind *sgerrors.ErrorType) error {
	return convert(validate.Struct(value), kind)
}

// Var checks a single value against a validator tag, such as "required,email", and
// reports a failure with the given kind.
func Var(value interface{}, tag string, kind *sgerrors.ErrorType) error {
	return convert(validate.Var(value, tag), kind)
}

func convert(err error, kind *sgerrors.ErrorType) error {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !xerrors.As(err, &fieldErrors) {
		return kind.New(err.Error(), nil, err)
	}

	details := make(map[string]interface{}, len(fieldErrors))
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		message := formatFieldError(fieldError)
		name := fieldError.Field()
		if name == "" {
			messages = append(messages, message)
			details["value"] = message
			continue
		}
		details[name] = message
		messages = append(messages, name+": "+message)
	}

	return kind.New(strings.Join(messages, "; "), details, err)
}

// formatFieldError converts a validator.FieldError to a human-readable message.
func formatFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldError.Param())
	default:
		if fieldError.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fieldError.Tag(), fieldError.Param())
		}
		return fmt.Sprintf("failed %s validation", fieldError.Tag())
	}
}
