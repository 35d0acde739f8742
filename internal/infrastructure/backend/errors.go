package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when no usable session exists for an
	// authenticated call.
	ErrAuthRequired = errors.New("Not authenticated")
	// ErrUnauthorized is returned when the backend rejects the bearer token.
	ErrUnauthorized = errors.New("Unauthorized")
)

// RequestError is a non-2xx backend response. Message is the backend's
// message/error field when present.
type RequestError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// UnexpectedError wraps failures that are not HTTP responses (transport,
// encoding).
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return "unexpected error"
	}
	return "unexpected error: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrAuthRequired) {
		return 401
	}
	return 0
}

func requestFailed(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}
