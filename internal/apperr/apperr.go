package apperr

import "net/http"

// Error is a status-coded failure raised by services and middleware. The
// outermost HTTP boundary converts it into the response envelope; anything
// that is not an *Error surfaces as a generic 500.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Internal(message string, details any) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Details: details}
}
