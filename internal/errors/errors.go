// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable indicates the campus backend could not be
	// reached or returned an unusable payload. The gateway swallows this
	// internally; it never crosses the engine boundary.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Is allows errors.Is(err, ErrInvalidInput) to match validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// GatewayError represents campus backend query failures with context.
type GatewayError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gateway error (path=%s, status=%d): %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway error (path=%s): %v", e.Path, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrUpstreamUnavailable) to match gateway errors.
func (e *GatewayError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// NewGatewayError creates a new gateway error.
func NewGatewayError(path string, statusCode int, err error) *GatewayError {
	return &GatewayError{
		Path:       path,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstreamUnavailable reports whether err indicates a backend failure.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}
