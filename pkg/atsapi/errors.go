package atsapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingBaseURL indicates the client was constructed without an API base URL.
	ErrMissingBaseURL = errors.New("atsapi: base URL is required")

	// ErrInvalidBaseURL indicates the configured base URL could not be parsed.
	ErrInvalidBaseURL = errors.New("atsapi: invalid base URL")
)

// APIError is a non-2xx response from the server. Message carries the
// human-readable `error` field of the response payload; it is empty when the
// server sent no message, so callers can tell a server-provided message from
// a fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("atsapi: server returned %d: %s", e.StatusCode, msg)
}

// AsAPIError unwraps err into an *APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
