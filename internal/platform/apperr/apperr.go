// Package apperr defines the application error taxonomy shared by all
// domain services. Handlers and the global HTTP error handler map each
// kind to a stable status category.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindValidation means the input is malformed or missing; the client
	// must fix the request before retrying.
	KindValidation Kind = iota
	// KindAuthentication means the credential is missing, invalid, or expired.
	KindAuthentication
	// KindAuthorization means the caller is authenticated but lacks the
	// role or ownership required.
	KindAuthorization
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindConflict means the request collides with existing state
	// (slot already booked, duplicate registration, already cancelled).
	KindConflict
	// KindInternal is everything else; surfaced as a generic 500.
	KindInternal
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// Authentication returns a KindAuthentication error.
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Msg: msg} }

// Authorization returns a KindAuthorization error.
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// Internal wraps an unexpected error. The wrapped cause is logged
// server-side but never serialized to the client.
func Internal(msg string, err error) *Error { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// KindOf extracts the Kind from err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Internal errors collapse
// to a generic message so no internal detail leaks.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Msg
	}
	return "internal server error"
}
