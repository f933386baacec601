package users

import "context"

// Service defines the business logic interface for user profiles
type Service interface {
	// GetByID returns a live user with the resolved profile-image path
	GetByID(ctx context.Context, id int64) (*User, error)

	// CheckNickname reports whether the nickname is free among live users
	CheckNickname(ctx context.Context, nickname string) (bool, error)

	// UpdateProfile changes the user's nickname
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*User, error)
}

// Repository defines the data access interface for users
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByNickname returns a live user by nickname, or ErrUserNotFound
	GetByNickname(ctx context.Context, nickname string) (*User, error)

	// UpdateNickname updates the nickname of a live user;
	// ErrNicknameTaken on a uniqueness conflict
	UpdateNickname(ctx context.Context, id int64, nickname string) (*User, error)
}
