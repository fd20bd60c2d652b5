// Package errors provides custom error types for the caseatlas system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// Common sentinel errors for the caseatlas system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrRateLimited indicates that a backend rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a backend failure that may succeed on retry
	ErrTransient = errors.New("transient backend failure")

	// ErrFatal indicates a backend failure that retrying cannot fix
	ErrFatal = errors.New("fatal backend failure")

	// ErrBudgetExceeded indicates a prompt too large for the remaining
	// token budget; no backend call was made
	ErrBudgetExceeded = errors.New("token budget exceeded")

	// ErrExhaustedRetries indicates that the retry ceiling was reached
	ErrExhaustedRetries = errors.New("exhausted retries")
)

// BudgetError reports a prompt that would not leave enough completion
// budget under the configured token ceiling.
type BudgetError struct {
	PromptTokens int
	TokenLimit   int
	Remaining    int
}

// Error implements the error interface
func (e *BudgetError) Error() string {
	return fmt.Sprintf("prompt of %d tokens leaves %d completion tokens under limit %d",
		e.PromptTokens, e.Remaining, e.TokenLimit)
}

// Is implements errors.Is support
func (e *BudgetError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// BackendError represents a failure reported by an extraction backend.
type BackendError struct {
	Backend    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend %s error (status %d): %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s error: %s", e.Backend, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. A 429 status classifies as rate
// limiting, 5xx as transient; anything else is fatal.
func (e *BackendError) Is(target error) bool {
	switch {
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrTransient
	default:
		return target == ErrFatal
	}
}

// NewBackendError creates a new BackendError
func NewBackendError(backend string, statusCode int, message string) *BackendError {
	return &BackendError{
		Backend:    backend,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "markers", "booleans", "yaml", "xlsx"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations. Snapshot I/O
// failures are the only per-run errors escalated to the caller.
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTransient checks if an error may succeed on retry
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsFatal checks if an error is a non-retryable backend failure
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// IsBudgetExceeded checks if an error is a budget guard rejection
func IsBudgetExceeded(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}
