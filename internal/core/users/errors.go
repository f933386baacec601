package users

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user doesn't exist or is soft-deleted
	ErrUserNotFound = errors.New("user not found")

	// ErrNicknameTaken is returned when the nickname is used by a live user
	ErrNicknameTaken = errors.New("nickname already taken")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
