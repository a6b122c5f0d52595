package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNetwork covers transport failures and timeouts. Safe to retry.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized means the presented credential is invalid or expired.
	// Callers must treat it as a sign-out trigger.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials means the email/password pair was rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("email already registered")
)

// ServerError is a server-side fault (HTTP 5xx). Retrying with backoff is
// allowed but not guaranteed to succeed.
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d)", e.Code)
}

// ValidationError carries per-field messages rejected by the server.
// It is surfaced verbatim to the screens and never retried.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for field, msg := range e.FieldErrors {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Retryable reports whether the failure class is worth retrying verbatim.
func Retryable(err error) bool {
	var srvErr *ServerError
	return errors.Is(err, ErrNetwork) || errors.As(err, &srvErr)
}
