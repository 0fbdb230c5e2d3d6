package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrPostFieldsRequired indicates a post was submitted without a title or description.
	ErrPostFieldsRequired = errors.New("both title and description are required")

	// ErrCommentFieldsRequired indicates a comment was submitted without a username or body.
	ErrCommentFieldsRequired = errors.New("both username and comment are required")

	// ErrMissingID indicates an operation was called without a post or comment ID.
	ErrMissingID = errors.New("id is required")
)

// NetworkError means the request never produced a response:
// dial failure, timeout, or a cancelled context.
type NetworkError struct {
	Op  string // e.g. "GET /posts"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request hit the client timeout or a context deadline.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// HTTPError is a response with a non-2xx status.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string // Server-provided body, trimmed
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNetworkError reports whether err (or anything it wraps) is a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsHTTPError reports whether err (or anything it wraps) is an *HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// IsValidationError reports whether err is a client-side input rejection.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPostFieldsRequired) ||
		errors.Is(err, ErrCommentFieldsRequired) ||
		errors.Is(err, ErrMissingID)
}
