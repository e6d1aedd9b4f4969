package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeRidesNotFound     = "RIDES_NOT_FOUND_ERROR"
	CodeServer            = "SERVER_ERROR"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation creates a 400 error for client input that broke a rule
func Validation(message string) *AppError {
	return NewAppError(CodeValidation, message, http.StatusBadRequest, nil)
}

// Storage creates a 500 error for a failed store call.
// The cause is kept for server-side logging only.
func Storage(err error) *AppError {
	return NewAppError(CodeServer, "Unknown error", http.StatusInternalServerError, err)
}

// Internal creates a 500 error
func Internal(err error) *AppError {
	return Storage(err)
}

var (
	ErrRidesNotFound     = NewAppError(CodeRidesNotFound, "Could not find any rides", http.StatusNotFound, nil)
	ErrRateLimitExceeded = NewAppError(CodeRateLimitExceeded, "Rate limit exceeded. Please try again later", http.StatusTooManyRequests, nil)
)

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError attempts to convert an error to AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	// Anything unrecognised surfaces as the generic server error
	return Internal(err)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
