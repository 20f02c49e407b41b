// Package errors defines the structured application error type and the
// taxonomy used to translate internal failures into HTTP responses.
package errors

import (
	"fmt"
	"net/http"

	"github.com/formgate/contact-backend/logger"
)

type ErrorType string

const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	NotFoundError   ErrorType = "NOT_FOUND"
	RateLimitError  ErrorType = "RATE_LIMIT_EXCEEDED"
	DatabaseError   ErrorType = "DATABASE_ERROR"
	EmailError      ErrorType = "EMAIL_ERROR"
	ServerError     ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error. HTTPStatus drives the
// response code chosen by the error-handling middleware; Raw carries the
// underlying cause for logging and is never sent to the client.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Violations []string  `json:"violations,omitempty"`
	RetryAfter int       `json:"-"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error, defaulting to 500.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// New creates a new AppError with the status implied by its type.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports a client input error (missing, oversized or
// malformed field).
func ValidationFailed(message string, detail string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFailedWith reports a client input error with a flattened list of
// human-readable violation messages, as produced by the storage boundary.
func ValidationFailedWith(message string, violations []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Violations: violations,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports a lookup miss for the named entity.
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// RateLimitExceeded reports that a client exceeded a rate-limit ceiling.
// retryAfter is the number of seconds until the current window elapses.
func RateLimitExceeded(message string, retryAfter int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		RetryAfter: retryAfter,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewDatabaseError logs the original storage failure and returns a sanitized
// error for the client.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// EmailSendFailed logs the transport failure and returns a sanitized error.
// The submission is already persisted when this is raised; the caller must not
// interpret it as "no record of the submission".
func EmailSendFailed(err error) *AppError {
	logger.GetLogger().Errorw("Email delivery error", "error", err)
	return &AppError{
		Type:       EmailError,
		Message:    "Failed to send notification email",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// InternalServerError reports a generic server-side failure.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
