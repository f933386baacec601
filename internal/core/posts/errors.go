package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrPostNotFound is returned when a post doesn't exist or is soft-deleted
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidSortMode is returned for an unrecognized feed sort mode
	ErrInvalidSortMode = errors.New("invalid sort mode")

	// ErrMissingViewerLocation is returned when distance sort is requested
	// without viewer coordinates
	ErrMissingViewerLocation = errors.New("viewer location required for distance sort")

	// ErrNotPostOwner is returned when a user tries to delete someone else's post
	ErrNotPostOwner = errors.New("only the post owner may delete it")

	// ErrAlreadyLiked is returned when liking a post that already has a live
	// like from the same user
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked is returned when unliking a post with no live like from the user
	ErrNotLiked = errors.New("post not liked")
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

// RankQueryError wraps a store failure during the phase-1 rank query.
// The request fails as a whole; the caller decides on retry.
type RankQueryError struct {
	Err error
}

func (e *RankQueryError) Error() string {
	return fmt.Sprintf("rank query failed: %v", e.Err)
}

func (e *RankQueryError) Unwrap() error { return e.Err }

// IsRankQueryError checks if error is a phase-1 store failure
func IsRankQueryError(err error) bool {
	var rqErr *RankQueryError
	return errors.As(err, &rqErr)
}

// DetailFetchError wraps a store failure during the phase-2 detail fetch
type DetailFetchError struct {
	Err error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("detail fetch failed: %v", e.Err)
}

func (e *DetailFetchError) Unwrap() error { return e.Err }

// IsDetailFetchError checks if error is a phase-2 store failure
func IsDetailFetchError(err error) bool {
	var dfErr *DetailFetchError
	return errors.As(err, &dfErr)
}
