// Package errors provides structured error types for the DyNetML toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code corresponds to one failure category of the model:
//   - INVALID_TYPE: wrong argument shape (e.g. a path that is not a file)
//   - INVALID_VALUE: malformed enum value, date or bool literal, or
//     mutually exclusive include/exclude lists both populated
//   - NOT_FOUND: missing nodeclass/nodeset/node/network key lookups
//   - CONFLICT: duplicate id or property name on create/rename
//   - IO_ERROR: output path is a directory, input path missing or unreadable
//   - PARSE_ERROR: malformed XML document
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "nodeclass %q not in node tree", name)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Handle missing key
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories of the model.
const (
	ErrCodeInvalidType  Code = "INVALID_TYPE"
	ErrCodeInvalidValue Code = "INVALID_VALUE"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeConflict     Code = "CONFLICT"
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeParse        Code = "PARSE_ERROR"
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
