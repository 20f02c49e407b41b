package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, DatabaseError, "ignored"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("Contact", "abc-123")
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "Contact not found", err.Message)
	assert.Equal(t, "ID: abc-123", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("Invalid email", "format not correct")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "Invalid email", err.Message)
	assert.Equal(t, "format not correct", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestValidationFailedWith(t *testing.T) {
	violations := []string{"name must be at most 100 characters", "message must not be blank"}
	err := ValidationFailedWith("Validation failed", violations)
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, violations, err.Violations)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestRateLimitExceeded(t *testing.T) {
	err := RateLimitExceeded("Too many requests", 120)
	assert.Equal(t, RateLimitError, err.Type)
	assert.Equal(t, 120, err.RetryAfter)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNewDatabaseError(t *testing.T) {
	originalErr := fmt.Errorf("connection failed")
	err := NewDatabaseError(originalErr)
	assert.Equal(t, DatabaseError, err.Type)
	assert.Equal(t, "Database operation failed", err.Message)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, originalErr, err.Raw)
}

func TestEmailSendFailed(t *testing.T) {
	originalErr := fmt.Errorf("transport refused")
	err := EmailSendFailed(originalErr)
	assert.Equal(t, EmailError, err.Type)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, originalErr, err.Raw)
	assert.ErrorIs(t, err, originalErr)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "field required",
			},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "something broke",
			},
			expected: "SERVER_ERROR: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGetHTTPStatusDefault(t *testing.T) {
	err := &AppError{Type: ServerError, Message: "no status set"}
	assert.Equal(t, 500, err.GetHTTPStatus())
}
