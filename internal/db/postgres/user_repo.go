package postgres

import (
	"Skyflower/internal/core/users"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// GetByID retrieves a live user with the resolved profile-image path
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `
		SELECT u.id, u.nickname, u.created_at, u.updated_at, prof.file_path
		FROM users u
		LEFT JOIN files prof ON prof.id = u.profile_file_id AND prof.deleted_at IS NULL
		WHERE u.id = $1 AND u.deleted_at IS NULL
	`

	user := &users.User{}
	var profilePath sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Nickname, &user.CreatedAt, &user.UpdatedAt, &profilePath)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if profilePath.Valid {
		user.ProfilePath = &profilePath.String
	}
	return user, nil
}

// GetByNickname retrieves a live user by nickname
func (r *postgresUserRepo) GetByNickname(ctx context.Context, nickname string) (*users.User, error) {
	query := `
		SELECT id, nickname, created_at, updated_at
		FROM users
		WHERE nickname = $1 AND deleted_at IS NULL
	`

	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, nickname).
		Scan(&user.ID, &user.Nickname, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by nickname: %w", err)
	}
	return user, nil
}

// UpdateNickname updates the nickname of a live user
func (r *postgresUserRepo) UpdateNickname(ctx context.Context, id int64, nickname string) (*users.User, error) {
	query := `
		UPDATE users
		SET nickname = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, nickname, created_at, updated_at
	`

	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, id, nickname).
		Scan(&user.ID, &user.Nickname, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "users_nickname_key") {
			return nil, users.ErrNicknameTaken
		}
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}
	return user, nil
}
