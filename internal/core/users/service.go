package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type userService struct {
	repo Repository
}

// NewUserService creates a new user service
func NewUserService(repo Repository) Service {
	return &userService{repo: repo}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// CheckNickname reports whether the nickname is free among live users
func (s *userService) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	if strings.TrimSpace(nickname) == "" {
		return false, NewValidationError("nickname", "nickname must not be empty")
	}

	_, err := s.repo.GetByNickname(ctx, nickname)
	if errors.Is(err, ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check nickname: %w", err)
	}
	return false, nil
}

// UpdateProfile changes the user's nickname
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*User, error) {
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		return nil, NewValidationError("nickname", "nickname must not be empty")
	}
	if len(nickname) > 30 {
		return nil, NewValidationError("nickname", "nickname must not exceed 30 characters")
	}

	// Uniqueness is enforced by the store; the repo maps the conflict
	return s.repo.UpdateNickname(ctx, userID, nickname)
}
