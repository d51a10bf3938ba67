// Package errors provides structured error types for the door diagram generator.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - Row-level warnings that are collected instead of aborting a run
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - MALFORMED_*, UNRECOGNIZED_*, CONFLICTING_*: row-level defects (recoverable)
//   - EMPTY_INPUT: run-level defect, no valid panel in the input
//   - OUTPUT_COLLISION: two panels map to the same file name; one is renamed
//   - INVALID_*: option and configuration validation failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Row-level defects
	ErrCodeMalformedRow      Code = "MALFORMED_ROW"
	ErrCodeUnrecognizedType  Code = "UNRECOGNIZED_TYPE"
	ErrCodeConflictingValue  Code = "CONFLICTING_VALUE"
	ErrCodeSubpanelCollision Code = "SUBPANEL_COLLISION"

	// Run-level defects
	ErrCodeEmptyInput      Code = "EMPTY_INPUT"
	ErrCodeOutputCollision Code = "OUTPUT_COLLISION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
	var re *RowError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error or *RowError.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var re *RowError
	if errors.As(err, &re) {
		return re.Code
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
	var re *RowError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

// RowError reports a defect tied to a single input row. The normalizer returns
// it with ErrCodeMalformedRow when a required identifier is blank.
type RowError struct {
	Code    Code
	Line    int    // 1-based source line, 0 when unknown
	Field   string // canonical column name, empty when not field-specific
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Malformed creates a MALFORMED_ROW error for the given line and field.
func Malformed(line int, field, format string, args ...any) *RowError {
	return &RowError{
		Code:    ErrCodeMalformedRow,
		Line:    line,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Warning is a non-fatal defect collected during a run and reported alongside
// successful output.
type Warning struct {
	Code    Code   `json:"code"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// String formats the warning for log output.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// Warn creates a Warning with a formatted message.
func Warn(code Code, line int, format string, args ...any) Warning {
	return Warning{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}

// AsWarning converts a row-level error into a Warning. Errors that carry no
// code are reported as MALFORMED_ROW.
func AsWarning(err error) Warning {
	var re *RowError
	if errors.As(err, &re) {
		return Warning{Code: re.Code, Line: re.Line, Message: re.Message}
	}
	code := GetCode(err)
	if code == "" {
		code = ErrCodeMalformedRow
	}
	return Warning{Code: code, Message: UserMessage(err)}
}
