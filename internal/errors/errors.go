// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyRequests indicates the caller exceeded its request budget.
	ErrTooManyRequests = errors.New("too many requests")
)

// Kind identifies a structured validation failure. Kinds are stable identifiers
// meant to be rendered into human text by the caller (for example, a localized
// message catalog keyed by kind).
type Kind string

// Params carries the named values a rendered message needs (domain, value,
// character, position, component, ...).
type Params map[string]any

// Error is a structured validation failure. It always unwraps to ErrInvalidInput.
type Error struct {
	Kind   Kind
	Params Params
}

// NewKindError creates a structured error of the given kind.
func NewKindError(kind Kind, params Params) *Error {
	if params == nil {
		params = Params{}
	}
	return &Error{Kind: kind, Params: params}
}

// Error renders the kind followed by its parameters in key order.
func (e *Error) Error() string {
	if len(e.Params) == 0 {
		return string(e.Kind)
	}

	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Kind, strings.Join(parts, ", "))
}

// Unwrap lets errors.Is(err, ErrInvalidInput) succeed for every structured error.
func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// Param returns a named parameter, or nil if absent.
func (e *Error) Param(name string) any {
	return e.Params[name]
}

// KindOf extracts the kind of the first structured error in err's tree.
func KindOf(err error) (Kind, bool) {
	var kindErr *Error
	if errors.As(err, &kindErr) {
		return kindErr.Kind, true
	}
	return "", false
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
