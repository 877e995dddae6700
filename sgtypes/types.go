// Named wire types that the encoding strategies hook into.
package sgtypes

import (
	"time"
)

// BinData holds raw binary blob information, such as attachment content, that must
// travel inside a text payload. How it is rendered (base64 or hex) is decided by the
// binary policy of the encoding strategy in use, not by the value itself.
type BinData []byte

// String renders the raw bytes, mostly for debugging.
func (data BinData) String() string {
	return string(data)
}

// Time is a timestamp whose wire form (unix seconds, milliseconds, ISO 8601 or a
// fixed layout) is decided by the date policy of the encoding strategy in use.
// Plain time.Time values in JSON bodies keep their RFC 3339 form.
type Time time.Time

// NewTime wraps value.
func NewTime(value time.Time) Time {
	return Time(value)
}

// TimePtr wraps value and returns a pointer, for optional fields.
func TimePtr(value time.Time) *Time {
	wrapped := Time(value)
	return &wrapped
}

// Time unwraps the timestamp.
func (value Time) Time() time.Time {
	return time.Time(value)
}

func (value Time) IsZero() bool {
	return time.Time(value).IsZero()
}

func (value Time) Before(other Time) bool {
	return time.Time(value).Before(time.Time(other))
}

func (value Time) Equal(other Time) bool {
	return time.Time(value).Equal(time.Time(other))
}

func (value Time) String() string {
	return time.Time(value).String()
}
