package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user exists for an id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when signing up with a registered email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when a login password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBookNotFound is returned when no book exists for an id.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookUnavailable is returned when a purchase cannot proceed because the
	// book is missing, already sold, or the buyer does not resolve to a user.
	ErrBookUnavailable = errors.New("book not found or already sold")
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapError maps domain sentinels to HTTP errors with their fixed response
// messages. It reports false for unexpected errors so callers can choose
// between an endpoint-specific 500 body and propagating to the framework.
func MapError(err error) (*HTTPError, bool) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found"), true
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, "User already exists"), true
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials"), true
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, "Book not found"), true
	case errors.Is(err, ErrBookUnavailable):
		return NewHTTPError(http.StatusNotFound, "Book not found or already sold"), true
	default:
		return nil, false
	}
}
