package simplify

import (
	"errors"
	"fmt"
)

// ErrInvalidAPIKey is returned by New when the key does not match the
// required format. No request can ever be issued with such a key.
var ErrInvalidAPIKey = errors.New("simplify: invalid api key")

// ErrMalformedResponse marks a 2xx response whose body did not parse as a
// card token. It is distinct from a service rejection.
var ErrMalformedResponse = errors.New("simplify: malformed response body")

// FieldError is a single field-level validation failure reported by the
// service.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is a request the service rejected: any non-2xx response with a
// structured error body. It is the principal channel for "invalid card" and
// "card declined" outcomes.
type Error struct {
	// StatusCode is the HTTP status of the rejection.
	StatusCode int `json:"-"`

	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Reference   string       `json:"reference,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "an error occurred"
	}
	if e.Code != "" {
		return fmt.Sprintf("simplify: %s (%s, status %d)", msg, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("simplify: %s (status %d)", msg, e.StatusCode)
}

// ConnError is a transport-level failure: the request never produced a
// service response. Timeout distinguishes timed-out calls from other I/O
// errors so callers can choose different user messaging.
type ConnError struct {
	Timeout bool
	Err     error
}

func (e *ConnError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("simplify: request timed out: %v", e.Err)
	}
	return fmt.Sprintf("simplify: connection failed: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var ce *ConnError
	return errors.As(err, &ce) && ce.Timeout
}
