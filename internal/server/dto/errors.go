package dto

import (
	"fmt"
	"net/http"
)

// ErrorWithStatus is an error that maps to an envelope code. The handler
// wrapper renders any such error as {code, message, data:null}.
type ErrorWithStatus interface {
	Error() string
	StatusCode() int
}

// APIError is a concrete error type carrying an envelope code.
type APIError struct {
	statusCode int
	message    string
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{statusCode: statusCode, message: message}
}

// Wrap attaches an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// StatusCode returns the envelope/HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// NotFound creates a 404 error.
func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

// BadRequest creates a 400 error.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

// Internal creates a 500 error wrapping an underlying cause.
func Internal(message string, err error) *APIError {
	return NewAPIError(http.StatusInternalServerError, message).Wrap(err)
}
