package users

import "time"

// User represents a user row. ProfilePath is resolved from the live
// profile-image file, nil when none is set.
type User struct {
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	ProfilePath *string    `json:"profileUrl,omitempty"`
	Nickname    string     `json:"nickname" db:"nickname"`
	ID          int64      `json:"id" db:"id"`
}

// UpdateProfileRequest is the input for profile updates
type UpdateProfileRequest struct {
	Nickname string `json:"nickname"`
}
