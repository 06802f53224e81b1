// Package errors provides centralized error definitions and error handling
// utilities for the reserva client. It defines sentinel errors for the
// conditions the UI distinguishes, a typed error carrying the backend's
// human-readable message, and classification helpers used at operation
// boundaries.
//
// # Error Taxonomy
//
// The client distinguishes four failure classes:
//   - Unauthenticated: the session is absent or was rejected (HTTP 401)
//   - SessionExpired: the CSRF/session handshake went stale (HTTP 419)
//   - NotFound: the requested resource does not exist (HTTP 404)
//   - Unavailable: transport-level failure (connection refused, timeout)
//
// # Usage
//
// Checking errors:
//
//	if errors.IsUnauthenticated(err) { ... }
//	if errors.Is(err, errors.ErrNotFound) { ... }
//
// Displaying errors:
//
//	msg := errors.UserMessage(err) // server message verbatim, or a fallback
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Session-related sentinel errors
var (
	// ErrUnauthenticated indicates there is no valid session behind the call.
	ErrUnauthenticated = New("no authenticated session")
	// ErrSessionExpired indicates the session or CSRF token went stale (419).
	ErrSessionExpired = New("session expired")
)

// Resource-related sentinel errors
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = New("not found")
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = New("backend unavailable")
)

// -----------------------------------------------------------------------------
// APIError
// -----------------------------------------------------------------------------

// APIError is an error response from the backend. Message holds the backend's
// human-readable `message` field when one was present; the UI surfaces it
// verbatim.
type APIError struct {
	// Status is the HTTP status code of the response. A Status of 200 is
	// possible: the backend reports some operation failures as
	// {"success": false, "message": ...} with a 2xx status.
	Status int
	// Message is the server-provided message, empty if the body carried none.
	Message string
	// Err is the sentinel this status maps to, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Unwrap returns the underlying sentinel, allowing errors.Is checks.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates an APIError for the given status and server message,
// mapping well-known statuses to their sentinels.
func NewAPIError(status int, message string) *APIError {
	var sentinel error
	switch status {
	case 401:
		sentinel = ErrUnauthenticated
	case 404:
		sentinel = ErrNotFound
	case 419:
		sentinel = ErrSessionExpired
	}
	return &APIError{Status: status, Message: message, Err: sentinel}
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUnauthenticated reports whether err represents a missing or rejected
// session. During initial session resolution this is an expected outcome,
// not a failure.
func IsUnauthenticated(err error) bool {
	return Is(err, ErrUnauthenticated)
}

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsSessionExpired reports whether err represents a stale session/CSRF state.
func IsSessionExpired(err error) bool {
	return Is(err, ErrSessionExpired)
}

// UserMessage returns the text the UI should show for err: the backend's
// message verbatim when present, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
