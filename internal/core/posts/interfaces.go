package posts

import "context"

// Service defines the business logic interface for posts.
// Coordinates the two-phase feed pipeline and post/like mutations.
type Service interface {
	// GetFeed returns one page of the post feed under the requested sort
	// mode. Anonymous viewers get isLiked=false on every entry.
	GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error)

	// GetPost returns the projection of a single live post
	GetPost(ctx context.Context, postID int64, viewerID *int64) (*PostEntry, error)

	// CreatePost stores a new post together with its photo and marker-photo
	// file associations in a single transaction
	CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (*Post, error)

	// DeletePost soft-deletes a post owned by userID
	DeletePost(ctx context.Context, userID, postID int64) error

	// LikePost records a like; at most one live like per (post, user)
	LikePost(ctx context.Context, userID, postID int64) error

	// UnlikePost soft-deletes the user's live like on the post
	UnlikePost(ctx context.Context, userID, postID int64) error
}

// Repository defines the data access interface for posts.
// RankPosts is the raw-query phase; GetDetails is the structured phase.
// Both must apply the same live-post predicate or the phases diverge.
type Repository interface {
	// RankPosts executes the phase-1 rank query and returns identifiers in
	// rank order with their scores. Limit/offset are applied here, before
	// any detail is materialized.
	RankPosts(ctx context.Context, req RankRequest) ([]RankedPost, error)

	// GetDetails loads full projections for a set of identifiers, keyed by
	// id. Identifiers with no matching live post are absent from the map
	// (race with deletion between phases), not an error.
	GetDetails(ctx context.Context, ids []int64) (map[int64]*PostDetail, error)

	// CountLive returns the total number of live posts, the predicate used
	// for pagination totals in every sort mode
	CountLive(ctx context.Context) (int, error)

	// GetByID returns a live post row, or ErrPostNotFound
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Create inserts the post, its two file rows, and the usage-tagged
	// associations in one transaction
	Create(ctx context.Context, post *Post, photo, marker *StoredFile) error

	// SoftDelete marks a live post deleted; ErrPostNotFound if none
	SoftDelete(ctx context.Context, id int64) error

	// CreateLike inserts a like row; ErrAlreadyLiked if a live like exists
	CreateLike(ctx context.Context, postID, userID int64) error

	// SoftDeleteLike marks the live like deleted; ErrNotLiked if none
	SoftDeleteLike(ctx context.Context, postID, userID int64) error
}

// StoredFile describes a file row created alongside a post
type StoredFile struct {
	OriginalName string
	Extension    string
	FileType     string
	Path         string
}
