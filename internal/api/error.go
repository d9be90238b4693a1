package api

import (
	"fmt"
	"net/http"
)

// Error is the single error type produced by Client for failed requests.
// Callers never construct it themselves; they branch on StatusCode or the
// helper predicates and re-expose Message to the presentation layer as-is.
type Error struct {
	// Message is the human-readable failure description: the server's own
	// error message when one could be parsed, a generic "HTTP error!" line
	// otherwise, or the transport failure description.
	Message string

	// StatusCode is the HTTP status of the response, or 0 when no response
	// was obtained at all (DNS, connection, timeout).
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Transport reports whether the failure happened before any response was
// received.
func (e *Error) Transport() bool {
	return e.StatusCode == 0
}

// NotFound reports whether the server answered 404.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unauthorized reports whether the server answered 401, which the session
// layer treats as client-side token expiry.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
