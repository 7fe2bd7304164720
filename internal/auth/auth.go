package auth

import (
	"context"
	"errors"
)

const (
	OpLogin    = "login"
	OpRegister = "register"

	DefaultLoginMessage    = "Login failed"
	DefaultRegisterMessage = "Registration failed"
)

// ErrMalformedResponse marks a response body that could not be decoded as JSON.
var ErrMalformedResponse = errors.New("malformed response body")

// Service defines the authentication operations
type Service interface {
	Login(ctx context.Context, email, password string) (Result, error)
	Register(ctx context.Context, username, email, password string) (Result, error)
}

// Credentials contains login request data
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration contains signup request data
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Error is returned when the service answers with a non-2xx status.
// Error() yields Message alone so it can be shown to the user as-is.
type Error struct {
	Op      string
	Status  int
	Message string

	// Detail holds the server's "error" field, if any. It never replaces Message.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultMessage returns the fallback failure message for op.
func DefaultMessage(op string) string {
	if op == OpRegister {
		return DefaultRegisterMessage
	}
	return DefaultLoginMessage
}

// Message extracts the user-facing text from err, whatever its kind.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
