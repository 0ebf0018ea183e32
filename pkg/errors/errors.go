// Package errors provides structured error types for schematic.
//
// Every structural problem with a diagram is reported synchronously, at the
// moment it is introduced, with a machine-readable [Code]. Nothing here is
// retried: a malformed scene is a programming or data error, not a transient
// fault.
//
// # Error Codes
//
// The diagram taxonomy:
//   - INVALID_DIMENSIONS: a shape or canvas has a non-positive width or height
//   - DUPLICATE_SHAPE_ID: two shapes in one scene share an identifier
//   - UNKNOWN_SHAPE_REFERENCE: a connector names a shape not in the scene
//   - INVALID_ANCHOR: an anchor is not supported by the shape's kind
//   - DEGENERATE_CONNECTOR: a connector's resolved endpoints coincide
//
// Supporting codes cover styles, connectors, configuration, I/O paths and
// backend faults raised while producing an image.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateShapeID, "duplicate shape id %q", id)
//	if errors.Is(err, errors.ErrCodeDuplicateShapeID) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRender, origErr, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Scene construction errors.
const (
	ErrCodeInvalidDimensions     Code = "INVALID_DIMENSIONS"
	ErrCodeDuplicateShapeID      Code = "DUPLICATE_SHAPE_ID"
	ErrCodeUnknownShapeReference Code = "UNKNOWN_SHAPE_REFERENCE"
	ErrCodeInvalidAnchor         Code = "INVALID_ANCHOR"
	ErrCodeDegenerateConnector   Code = "DEGENERATE_CONNECTOR"
	ErrCodeInvalidConnector      Code = "INVALID_CONNECTOR"
	ErrCodeInvalidStyle          Code = "INVALID_STYLE"
)

// Input and environment errors.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeNotFound      Code = "NOT_FOUND"
)

// Backend and internal errors.
const (
	ErrCodeRender      Code = "RENDER_FAILED"
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

// IsValidation reports whether err belongs to the scene construction
// taxonomy, i.e. the caller supplied a malformed diagram.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidDimensions, ErrCodeDuplicateShapeID, ErrCodeUnknownShapeReference,
		ErrCodeInvalidAnchor, ErrCodeDegenerateConnector, ErrCodeInvalidConnector,
		ErrCodeInvalidStyle:
		return true
	}
	return false
}
