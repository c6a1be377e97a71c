// Package errors provides structured error types for gdiff.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, the pipeline and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Locating a failure in the input documents via its label path
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Document errors (MALFORMED_DOCUMENT, UNKNOWN_COLOR_CLASS, AMBIGUOUS_LABEL)
// describe a problem with one of the input graphs. Configuration errors
// (INVALID_MODE, INVALID_PALETTE, INVALID_CONFIG) describe a problem with the
// run settings. Every code is fatal for the current invocation.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownColorClass, "fill %s is not a known class", fill)
//	err = err.WithPath([]string{"EGFR", "Y1068"})
//	if errors.Is(err, errors.ErrCodeUnknownColorClass) {
//	    // Handle classification error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document errors
	ErrCodeMalformedDocument Code = "MALFORMED_DOCUMENT"
	ErrCodeUnknownColorClass Code = "UNKNOWN_COLOR_CLASS"
	ErrCodeAmbiguousLabel    Code = "AMBIGUOUS_LABEL"

	// Configuration errors
	ErrCodeInvalidMode    Code = "INVALID_MODE"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// PathSeparator joins label path segments in error messages.
const PathSeparator = "/"

// Error is a structured error with a code, an optional label path and an
// optional cause.
type Error struct {
	Code    Code     // Machine-readable error code
	Message string   // Human-readable message
	Path    []string // Label path of the offending node (optional)
	Cause   error    // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, "at %s: ", FormatPath(e.Path))
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithPath returns a copy of e annotated with the given label path.
// The path slice is copied.
func (e *Error) WithPath(path []string) *Error {
	out := *e
	out.Path = append([]string(nil), path...)
	return &out
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

// GetPath extracts the label path from the first *Error in the chain.
func GetPath(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return nil
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with its label path, if any)
// without the code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if len(e.Path) > 0 {
			return fmt.Sprintf("%s (at %s)", e.Message, FormatPath(e.Path))
		}
		return e.Message
	}
	return err.Error()
}

// FormatPath renders a label path for humans.
func FormatPath(path []string) string {
	return strings.Join(path, PathSeparator)
}
