package posts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"Skyflower/internal/core/files"
)

// postService implements the Service interface.
// The feed path is the two-phase pipeline: rank query for ordered
// identifiers, detail fetch, reorder, then per-viewer projection.
type postService struct {
	repo       Repository
	logger     *slog.Logger
	cutoffHour int
	now        func() time.Time
}

// NewPostService creates a new post service
func NewPostService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:       repo,
		logger:     logger,
		cutoffHour: RankingCutoffHour,
		now:        time.Now,
	}
}

// GetFeed returns one page of the feed under the requested sort mode
func (s *postService) GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error) {
	if err := s.validateFeedRequest(&req); err != nil {
		return nil, err
	}

	// Phase 1: rank query returns ordered identifiers only.
	// The ranking window is resolved per request since it tracks wall-clock time.
	windowStart, windowEnd := RankingWindow(s.now(), s.cutoffHour)
	ranked, err := s.repo.RankPosts(ctx, RankRequest{
		Sort:        req.Sort,
		Limit:       req.Limit,
		Offset:      (req.Page - 1) * req.Limit,
		ViewerLat:   req.ViewerLat,
		ViewerLng:   req.ViewerLng,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	})
	if err != nil {
		s.logger.Error("feed rank query failed", "sort", req.Sort, "page", req.Page, "error", err)
		return nil, &RankQueryError{Err: err}
	}

	// Phase 2: detail fetch, then restore rank order. Identifiers deleted
	// between the phases drop out here rather than failing the request.
	ids := make([]int64, len(ranked))
	for i, rp := range ranked {
		ids[i] = rp.ID
	}
	details, err := s.repo.GetDetails(ctx, ids)
	if err != nil {
		s.logger.Error("feed detail fetch failed", "sort", req.Sort, "ids", len(ids), "error", err)
		return nil, &DetailFetchError{Err: err}
	}
	ordered := reorderByRank(ranked, details)

	// Pagination totals use the live-post predicate in every sort mode;
	// the ranking window affects ordering only, never membership.
	totalCount, err := s.repo.CountLive(ctx)
	if err != nil {
		return nil, &RankQueryError{Err: fmt.Errorf("count live posts: %w", err)}
	}

	entries := make([]*PostEntry, len(ordered))
	for i, detail := range ordered {
		entries[i] = buildEntry(detail, req.ViewerID)
	}

	return &FeedPage{
		List:     entries,
		PageInfo: NewPageInfo(req.Page, req.Limit, totalCount, len(entries)),
	}, nil
}

// GetPost returns the projection of a single live post
func (s *postService) GetPost(ctx context.Context, postID int64, viewerID *int64) (*PostEntry, error) {
	details, err := s.repo.GetDetails(ctx, []int64{postID})
	if err != nil {
		return nil, &DetailFetchError{Err: err}
	}

	detail, ok := details[postID]
	if !ok {
		return nil, ErrPostNotFound
	}

	return buildEntry(detail, viewerID), nil
}

// CreatePost stores a new post with its photo and marker-photo associations
func (s *postService) CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (*Post, error) {
	photo, err := storedFileFromPath(req.PhotoPath)
	if err != nil {
		return nil, NewValidationError("photoUrl", err.Error())
	}
	marker, err := storedFileFromPath(req.MarkerPhotoPath)
	if err != nil {
		return nil, NewValidationError("markerPhotoUrl", err.Error())
	}

	post := &Post{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		City:      req.City,
		District:  req.District,
		Town:      req.Town,
	}

	if err := s.repo.Create(ctx, post, photo, marker); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post", post.ID, "user", userID)
	return post, nil
}

// DeletePost soft-deletes a post owned by userID
func (s *postService) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err := s.repo.SoftDelete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post", postID, "user", userID)
	return nil
}

// LikePost records a like on a live post.
// A second like without an intervening unlike fails with ErrAlreadyLiked.
func (s *postService) LikePost(ctx context.Context, userID, postID int64) error {
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return err
	}

	if err := s.repo.CreateLike(ctx, postID, userID); err != nil {
		return err
	}

	s.logger.Info("post liked", "post", postID, "user", userID)
	return nil
}

// UnlikePost soft-deletes the user's live like, keeping the row for history
func (s *postService) UnlikePost(ctx context.Context, userID, postID int64) error {
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return err
	}

	if err := s.repo.SoftDeleteLike(ctx, postID, userID); err != nil {
		return err
	}

	s.logger.Info("post unliked", "post", postID, "user", userID)
	return nil
}

// validateFeedRequest validates paging and sort parameters.
// Distance sort requires viewer coordinates; popularity merely uses them as
// a tie-break when present.
func (s *postService) validateFeedRequest(req *FeedRequest) error {
	if req.Page < 1 {
		return NewValidationError("page", "page must be >= 1")
	}
	if req.Limit < 1 {
		return NewValidationError("limit", "limit must be >= 1")
	}
	if req.Limit > 100 {
		return NewValidationError("limit", "limit must not exceed 100")
	}

	if req.Sort == "" {
		req.Sort = SortPopularity
	}
	switch req.Sort {
	case SortRecent, SortPopularity:
	case SortDistance:
		if req.ViewerLat == nil || req.ViewerLng == nil {
			return ErrMissingViewerLocation
		}
	default:
		return ErrInvalidSortMode
	}

	return nil
}

// buildEntry merges a detail record with the per-viewer derived fields
func buildEntry(detail *PostDetail, viewerID *int64) *PostEntry {
	isLiked := false
	if viewerID != nil {
		for _, likerID := range detail.LikerIDs {
			if likerID == *viewerID {
				isLiked = true
				break
			}
		}
	}

	return &PostEntry{
		ID:             detail.ID,
		UserID:         detail.Owner.ID,
		UserNickname:   detail.Owner.Nickname,
		UserProfileURL: detail.Owner.ProfilePath,
		IsDeletedUser:  detail.Owner.Deleted,
		Address:        detail.Address,
		Latitude:       detail.Latitude,
		Longitude:      detail.Longitude,
		PhotoURL:       detail.PhotoPath,
		MarkerPhotoURL: detail.MarkerPhotoPath,
		LikeCount:      len(detail.LikerIDs),
		IsLiked:        isLiked,
	}
}

func storedFileFromPath(path string) (*StoredFile, error) {
	info, err := files.ParseInfo(path)
	if err != nil {
		return nil, err
	}
	return &StoredFile{
		OriginalName: info.OriginalName,
		Extension:    info.Extension,
		FileType:     info.FileType,
		Path:         path,
	}, nil
}
