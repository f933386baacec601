package postgres

import (
	"Skyflower/internal/core/files"
	"Skyflower/internal/core/posts"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// GetDetails loads full post projections for a set of identifiers.
// Applies the same live-post predicate as the rank queries; identifiers
// soft-deleted between the two phases are simply absent from the result.
func (r *postgresPostRepo) GetDetails(ctx context.Context, ids []int64) (map[int64]*posts.PostDetail, error) {
	details := make(map[int64]*posts.PostDetail, len(ids))
	if len(ids) == 0 {
		return details, nil
	}

	// Base rows with owner and the owner's live profile image
	query := `
		SELECT
			p.id, p.address, p.latitude, p.longitude,
			u.id, u.nickname, u.deleted_at, prof.file_path
		FROM posts p
		INNER JOIN users u ON u.id = p.user_id
		LEFT JOIN files prof ON prof.id = u.profile_file_id AND prof.deleted_at IS NULL
		WHERE p.id = ANY($1) AND p.deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query post details: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var detail posts.PostDetail
		var ownerDeleted sql.NullTime
		var profilePath sql.NullString

		err := rows.Scan(
			&detail.ID, &detail.Address, &detail.Latitude, &detail.Longitude,
			&detail.Owner.ID, &detail.Owner.Nickname, &ownerDeleted, &profilePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post detail: %w", err)
		}

		detail.Owner.Deleted = ownerDeleted.Valid
		if profilePath.Valid {
			detail.Owner.ProfilePath = &profilePath.String
		}
		details[detail.ID] = &detail
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post details: %w", err)
	}

	if err := r.loadPostFiles(ctx, ids, details); err != nil {
		return nil, err
	}
	if err := r.loadLikes(ctx, ids, details); err != nil {
		return nil, err
	}

	return details, nil
}

// loadPostFiles resolves the live file path per usage tag for each post
func (r *postgresPostRepo) loadPostFiles(ctx context.Context, ids []int64, details map[int64]*posts.PostDetail) error {
	query := `
		SELECT pf.post_id, pf.usage, f.file_path
		FROM post_files pf
		INNER JOIN files f ON f.id = pf.file_id
		WHERE pf.post_id = ANY($1)
			AND pf.deleted_at IS NULL
			AND f.deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query post files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var postID int64
		var usage, path string
		if err := rows.Scan(&postID, &usage, &path); err != nil {
			return fmt.Errorf("failed to scan post file: %w", err)
		}

		detail, ok := details[postID]
		if !ok {
			continue
		}
		p := path
		switch usage {
		case posts.UsagePostPhoto:
			detail.PhotoPath = &p
		case posts.UsageMapMarker:
			detail.MarkerPhotoPath = &p
		}
	}
	return rows.Err()
}

// loadLikes attaches the live like set to each post for per-viewer projection
func (r *postgresPostRepo) loadLikes(ctx context.Context, ids []int64, details map[int64]*posts.PostDetail) error {
	query := `
		SELECT post_id, user_id
		FROM post_likes
		WHERE post_id = ANY($1) AND deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query post likes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var postID, userID int64
		if err := rows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("failed to scan post like: %w", err)
		}
		if detail, ok := details[postID]; ok {
			detail.LikerIDs = append(detail.LikerIDs, userID)
		}
	}
	return rows.Err()
}

// CountLive returns the total number of live posts
func (r *postgresPostRepo) CountLive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count live posts: %w", err)
	}
	return count, nil
}

// GetByID retrieves a live post row
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		SELECT id, user_id, latitude, longitude, address, city, district, town, created_at, deleted_at
		FROM posts
		WHERE id = $1 AND deleted_at IS NULL
	`

	var post posts.Post
	var address, city, district, town sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Latitude, &post.Longitude,
		&address, &city, &district, &town,
		&post.CreatedAt, &post.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Address = address.String
	post.City = city.String
	post.District = district.String
	post.Town = town.String
	return &post, nil
}

// Create inserts the post, its two file rows, and the usage-tagged
// associations in a single transaction so no partial post is ever visible
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post, photo, marker *posts.StoredFile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	photoID, err := insertFile(ctx, tx, post.UserID, photo)
	if err != nil {
		return err
	}
	markerID, err := insertFile(ctx, tx, post.UserID, marker)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (user_id, latitude, longitude, address, city, district, town, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`, post.UserID, post.Latitude, post.Longitude,
		nullable(post.Address), nullable(post.City), nullable(post.District), nullable(post.Town),
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO post_files (post_id, file_id, usage, created_at)
		VALUES ($1, $2, $3, NOW()), ($1, $4, $5, NOW())
	`, post.ID, photoID, posts.UsagePostPhoto, markerID, posts.UsageMapMarker)
	if err != nil {
		return fmt.Errorf("failed to insert post files: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post creation: %w", err)
	}
	return nil
}

// insertFile stores a file row; paths are unique across all files
func insertFile(ctx context.Context, tx *sql.Tx, userID int64, file *posts.StoredFile) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO files (user_id, original_name, extension, file_type, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`, userID, file.OriginalName, file.Extension, file.FileType, file.Path).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "files_file_path_key") {
			return 0, files.ErrFileAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert file: %w", err)
	}
	return id, nil
}

// SoftDelete marks a live post deleted
func (r *postgresPostRepo) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return posts.ErrPostNotFound
	}
	return nil
}

// CreateLike inserts a like row. A partial unique index on live
// (post_id, user_id) pairs enforces at most one live like; re-likes after an
// unlike insert a fresh row so historical counts survive.
func (r *postgresPostRepo) CreateLike(ctx context.Context, postID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`, postID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "uniq_post_likes_live") {
			return posts.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// SoftDeleteLike marks the user's live like deleted in a single statement
func (r *postgresPostRepo) SoftDeleteLike(ctx context.Context, postID, userID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE post_likes SET deleted_at = NOW()
		WHERE post_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check unlike result: %w", err)
	}
	if affected == 0 {
		return posts.ErrNotLiked
	}
	return nil
}

// nullable maps empty strings to NULL for optional text columns
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
