// Package errors provides structured error types for chartgrid.
//
// Layout problems are never fatal: the grid records them as warnings and
// degrades to partial geometry. The same [Error] type is used for those
// warnings and for hard failures raised by the option resolver and the
// pipeline, so callers can branch on [Code] in both cases.
//
// # Error Codes
//
// Layout codes (recoverable, reported as grid warnings):
//   - DEGENERATE_SCALE: zero-width data extent, padded locally
//   - MISSING_CATEGORY_AXIS: stacking or bar grouping on a Cartesian without a category axis
//   - DATA_LENGTH_MISMATCH: series length differs from the category count
//   - INVALID_AXIS_INDEX: series references an axis pair the grid did not create
//
// Input and internal codes:
//   - INVALID_*: option or flag validation failures
//   - UNSUPPORTED: recognised but unimplemented configuration
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOption, "unknown axis type %q", typ)
//	if errors.Is(err, errors.ErrCodeInvalidOption) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidOption, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout conditions
	ErrCodeDegenerateScale     Code = "DEGENERATE_SCALE"
	ErrCodeMissingCategoryAxis Code = "MISSING_CATEGORY_AXIS"
	ErrCodeDataLengthMismatch  Code = "DATA_LENGTH_MISMATCH"
	ErrCodeInvalidAxisIndex    Code = "INVALID_AXIS_INDEX"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidOption   Code = "INVALID_OPTION"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidLength   Code = "INVALID_LENGTH"
	ErrCodeInvalidPosition Code = "INVALID_POSITION"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNotFound     Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsLayoutWarning reports whether err carries one of the recoverable layout
// codes that the grid records instead of failing.
func IsLayoutWarning(err error) bool {
	switch GetCode(err) {
	case ErrCodeDegenerateScale, ErrCodeMissingCategoryAxis,
		ErrCodeDataLengthMismatch, ErrCodeInvalidAxisIndex:
		return true
	}
	return false
}
