// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. HTTPError for API responses) to ensure the client
// receives meaningful and consistent error messages.
//
// - Return a consistent error shape to API clients: {"Error": "<message>"}.
// - Keep field-level validation details and the underlying cause for logs only.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import (
	"strings"
)

// FieldError represents a field-level validation error.
// Field errors are logged, never serialized to clients.
//
//	{ "field": "zip_code", "error": "must be 5 characters" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "zip_code").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Only Message reaches the wire, under the "Error" key. Everything else
// drives the status line and the server-side log entry.
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: fixed client-facing message.
//   - Status: HTTP status code.
//   - Errors: per-field validation errors.
//   - cause: the underlying error kept for logging.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"Error"`
	Status  int    `json:"-"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"-"`

	cause error
}

// Error makes *HTTPError satisfy the built-in error interface.
//
// The cause is appended so logging the error shows what actually failed;
// the JSON body still only carries Message.
func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError.
//
// It does not compare Code/Status; it only matches on type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
		cause:   e.cause,
	}
}

// WithCause returns a copy of this HTTPError that wraps cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Errors:  e.Errors,
		cause:   cause,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
