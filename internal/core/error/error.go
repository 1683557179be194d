package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a Redis key does not exist.
	RedisNotFoundMessage = "redis key not found"
	// DatabaseErrorMessage describes SQL store failures.
	DatabaseErrorMessage = "database operation failed"
	// NotFoundMessage is the generic message for missing records.
	NotFoundMessage = "record not found"
	// ModelErrorMessage describes failures of an external text-generation provider.
	ModelErrorMessage = "model provider call failed"
	// InvalidInputMessage rejects malformed turn input.
	InvalidInputMessage = "invalid input"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// NotFound builds a 404 AppError for a missing per-room record.
func NotFound(what, roomID string) *AppError {
	return New(fmt.Errorf("%s for room %q", what, roomID), http.StatusNotFound, NotFoundMessage)
}

// WrapLLM wraps a provider failure so callers can tell it apart from store errors.
func WrapLLM(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}

// Invalid reports a caller mistake with status 400.
func Invalid(format string, args ...any) *AppError {
	return New(fmt.Errorf(format, args...), http.StatusBadRequest, InvalidInputMessage)
}

// IsNotFound reports whether err carries a 404 status anywhere in its chain.
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status == http.StatusNotFound
	}
	return false
}

// StatusOf returns the status attached to err, or 500 for plain errors.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
