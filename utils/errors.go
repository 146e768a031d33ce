package utils

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error or warning code.
type Code string

const (
	// Non fatal layout conditions, reported to observers.
	CodeUnresolvableDimension Code = "UNRESOLVABLE_DIMENSION"
	CodeUnsplittableOverflow  Code = "UNSPLITTABLE_OVERFLOW"

	// Input errors
	CodeInvalidValue  Code = "INVALID_VALUE"
	CodeInvalidMarkup Code = "INVALID_MARKUP"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeCreationFailed is used when a document could not be produced.
	CodeCreationFailed Code = "CREATION_FAILED"
)

// Error is a structured error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// NewError creates an Error with the given code and formatted message.
func NewError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error wrapping [cause].
func WrapError(code Code, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// HasCode reports whether the chain of [err] contains an *Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
