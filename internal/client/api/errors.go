package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession is returned by calls that need a bearer token when the
// client is not bound to a live session.
var ErrNoSession = errors.New("api: no active session")

// Error is a failed collaborator call: a transport failure (StatusCode 0)
// or a non-2xx response from the server.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the session.
func (e *Error) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// StatusCode extracts the HTTP status of a collaborator failure, or 0 when
// err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
