// Package errors provides structured error types for statcard.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the sync job
//   - Machine-readable error codes for choosing HTTP status codes
//   - User-friendly error messages for placeholder cards
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found (unknown GitHub user)
//   - REMOTE_API, RATE_LIMITED, NETWORK_ERROR, TIMEOUT: Upstream failures
//   - PARTIAL_DATA: Some per-repository fetches failed (not fatal)
//   - RENDER_INPUT_MISSING, INTERNAL_ERROR: Internal failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid username: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRemoteAPI, origErr, "failed to fetch %s", url)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUsername Code = "INVALID_USERNAME"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Upstream errors
	ErrCodeRemoteAPI   Code = "REMOTE_API"
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Degraded results
	ErrCodePartialData Code = "PARTIAL_DATA"

	// Internal errors
	ErrCodeRenderInputMissing Code = "RENDER_INPUT_MISSING"
	ErrCodeInternal           Code = "INTERNAL_ERROR"
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

// IsUpstream reports whether err originated from the GitHub API rather than
// from statcard itself. The HTTP layer maps upstream failures to 502.
func IsUpstream(err error) bool {
	switch GetCode(err) {
	case ErrCodeRemoteAPI, ErrCodeNetwork, ErrCodeTimeout, ErrCodeRateLimited, ErrCodeNotFound:
		return true
	}
	var remote *RemoteAPIError
	var limited *RateLimitedError
	return errors.As(err, &remote) || errors.As(err, &limited)
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

// RemoteAPIError is a non-2xx, non-rate-limit response from the GitHub API.
type RemoteAPIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface.
func (e *RemoteAPIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("github api: status %d from %s: %s", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("github api: status %d from %s", e.StatusCode, e.URL)
}

// Code returns the error code for this error type.
func (e *RemoteAPIError) Code() Code {
	return ErrCodeRemoteAPI
}

// RateLimitedError provides additional information for rate-limited responses.
// It only surfaces once the retry budget is exhausted.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
