package tperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedPath indicates a path expression violated the grammar.
	ErrMalformedPath = errors.New("malformed path expression")

	// ErrConfig indicates invalid configuration or input options.
	ErrConfig = errors.New("configuration error")
)

// MalformedPathError represents a syntax violation in a path expression.
// This includes unterminated brackets, unterminated quoted strings, and
// non-integer numeric tokens.
//
// A malformed expression always aborts the whole extraction session: no
// partially merged output is ever observable alongside this error.
type MalformedPathError struct {
	// Expression is the full path expression that failed to parse
	Expression string
	// Offset is the byte offset within Expression where parsing failed
	Offset int
	// Message describes the grammar violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedPathError) Error() string {
	msg := "malformed path expression"
	if e.Expression != "" {
		msg += fmt.Sprintf(" %q", e.Expression)
	}
	msg += fmt.Sprintf(" at offset %d", e.Offset)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedPathError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// ConfigError represents invalid configuration or input options,
// such as a nil source adapter on a custom Extractor.
type ConfigError struct {
	// Field is the configuration field with the issue
	Field string
	// Message describes the configuration failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
