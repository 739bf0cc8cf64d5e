// Package errors provides standardized error handling for hostprobe.
// It defines the sentinel errors every fact lookup reports through and
// utilities for wrapping them with context.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors for fact lookups
var (
	// ErrIO indicates a source file could not be read
	ErrIO = stderrors.New("source unreadable")

	// ErrFieldNotFound indicates no line in the source starts with the key
	ErrFieldNotFound = stderrors.New("field not found")

	// ErrMalformedLine indicates the matching line has no delimiter after the key
	ErrMalformedLine = stderrors.New("malformed line")

	// ErrParse indicates an extracted value could not be coerced to its type
	ErrParse = stderrors.New("parse failure")

	// ErrProviderUnavailable indicates an external provider is absent or
	// denied access on this platform
	ErrProviderUnavailable = stderrors.New("provider unavailable")

	// ErrInvalidConfig indicates configuration is invalid or incomplete
	ErrInvalidConfig = stderrors.New("invalid configuration")
)

// Wrap wraps an error with context message and preserves the underlying error chain.
// Use this to add context while maintaining error identity for stderrors.Is checks.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error with formatted message.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
