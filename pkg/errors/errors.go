// Package errors provides structured error types for photowall.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration failures
//   - TOO_MANY_*: Layouts the configured slots cannot hold
//   - *_NOT_FOUND: Missing files
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTooManyTargets, "%d images, %d slots", n, len(slots))
//	if errors.IsConfiguration(err) {
//	    // fall back to the default layout
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Configuration errors
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeTooManyTargets Code = "TOO_MANY_TARGETS"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsConfiguration reports whether err describes a layout that cannot be
// built from the configured slots and ranges.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeTooManyTargets:
		return true
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

// TooManyTargetsError carries the counts behind an ErrCodeTooManyTargets
// error. It is attached as the Cause of the coded *Error.
type TooManyTargetsError struct {
	Targets int
	Slots   int
}

// Error implements the error interface.
func (e *TooManyTargetsError) Error() string {
	return fmt.Sprintf("%d targets exceed %d available slots", e.Targets, e.Slots)
}

// Code returns the error code for this error type.
func (e *TooManyTargetsError) Code() Code {
	return ErrCodeTooManyTargets
}

