package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel kinds. Compare with errors.Is; every *Error unwraps to one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
)

// Error carries a short human-readable message for the client alongside the
// operation that produced it.
type Error struct {
	Op      string // e.g. "auth.Register"
	Message string // safe to show to the client
	Err     error  // one of the sentinel kinds
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(op, msg string) *Error {
	return &Error{Op: op, Message: msg, Err: ErrValidation}
}

func Conflict(op, msg string) *Error {
	return &Error{Op: op, Message: msg, Err: ErrConflict}
}

func Auth(op, msg string) *Error {
	return &Error{Op: op, Message: msg, Err: ErrAuth}
}

func NotFound(op, msg string) *Error {
	return &Error{Op: op, Message: msg, Err: ErrNotFound}
}

// HTTPStatus maps an error to the status code the API answers with.
// Unknown errors are 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrAuth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be sent to a client. Details of
// unexpected errors are never exposed.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return "internal server error"
}
