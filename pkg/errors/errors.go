// Package errors provides structured error types for cratetower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Locating the offending input (line number, instruction index)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Parse failures use MALFORMED_* codes, simulation failures use the name of
// the violated precondition (UNKNOWN_STACK, INSUFFICIENT_ITEMS). All of them
// are fatal to a run; nothing in cratetower retries or recovers from them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownStack, "stack %d is not declared", id)
//	if errors.Is(err, errors.ErrCodeUnknownStack) {
//	    // Handle the error
//	}
//
//	// Attach the input location
//	err = errors.At(err, 12, 3)
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
	// Parse errors
	ErrCodeMalformedDiagram     Code = "MALFORMED_DIAGRAM"
	ErrCodeMalformedInstruction Code = "MALFORMED_INSTRUCTION"
	ErrCodeZeroQuantity         Code = "ZERO_QUANTITY"

	// Simulation errors
	ErrCodeUnknownStack      Code = "UNKNOWN_STACK"
	ErrCodeInsufficientItems Code = "INSUFFICIENT_ITEMS"

	// Input and configuration errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidMode  Code = "INVALID_MODE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	Line    int    // 1-based input line, 0 if unknown
	Index   int    // 1-based instruction index, 0 if unknown
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if loc := e.location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) location() string {
	switch {
	case e.Line > 0 && e.Index > 0:
		return fmt.Sprintf("line %d (instruction %d)", e.Line, e.Index)
	case e.Line > 0:
		return fmt.Sprintf("line %d", e.Line)
	case e.Index > 0:
		return fmt.Sprintf("instruction %d", e.Index)
	}
	return ""
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

// At records the input location on err. Locations already present are kept,
// so the innermost (most precise) position wins. Errors that are not *Error
// are returned unchanged.
func At(err error, line, index int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Line == 0 {
		e.Line = line
	}
	if e.Index == 0 {
		e.Index = index
	}
	return err
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

// Location returns the line and instruction index recorded on err.
func Location(err error) (line, index int) {
	var e *Error
	if errors.As(err, &e) {
		return e.Line, e.Index
	}
	return 0, 0
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if loc := e.location(); loc != "" {
			return loc + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}
