package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes the client reacts to. REST call
// failures unwrap to one of these so call sites can use errors.Is without
// caring about status codes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("action forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrValidation   = errors.New("request rejected by validation")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrServer       = errors.New("backend error")

	// ErrNotConnected is returned when a send is attempted without an open
	// WebSocket.
	ErrNotConnected = errors.New("websocket not connected")

	// ErrNoSession is returned when an operation requires a logged-in
	// session and none is available.
	ErrNoSession = errors.New("no active session")
)

// APIError is a non-2xx response from the backend, carrying the
// backend-supplied detail message verbatim.
type APIError struct {
	StatusCode int
	Detail     string // the backend's {"detail": ...} field
	RequestID  string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Path, e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status code onto the sentinel taxonomy.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return ErrValidation
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return ErrServer
	}
	return nil
}

// NewAPIError builds an APIError for the given request and response.
func NewAPIError(method, path string, statusCode int, detail, requestID string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Detail:     detail,
		RequestID:  requestID,
		Method:     method,
		Path:       path,
	}
}

// IsAuthFailure reports whether err means the session is no longer valid
// and the user must log in again.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
