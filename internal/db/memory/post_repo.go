// Package memory provides an in-process implementation of the post
// repository. It computes distance and window aggregates in Go instead of in
// the store, for tests and for deployments without the raw-query path.
package memory

import (
	"Skyflower/internal/core/files"
	"Skyflower/internal/core/posts"
	"context"
	"math"
	"sort"
	"sync"
	"time"
)

const earthRadiusMeters = 6371000

type userRow struct {
	ProfilePath *string
	DeletedAt   *time.Time
	Nickname    string
	ID          int64
}

type likeRow struct {
	CreatedAt time.Time
	DeletedAt *time.Time
	PostID    int64
	UserID    int64
}

// PostRepository is an in-memory posts.Repository.
// Safe for concurrent use.
type PostRepository struct {
	now        func() time.Time
	postRows   map[int64]*posts.Post
	userRows   map[int64]*userRow
	pathsTaken map[string]bool
	postFiles  map[int64]map[string]string
	likeRows   []*likeRow
	nextPostID int64
	mu         sync.RWMutex
}

// NewPostRepository creates an empty in-memory repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		now:        time.Now,
		postRows:   make(map[int64]*posts.Post),
		userRows:   make(map[int64]*userRow),
		pathsTaken: make(map[string]bool),
		postFiles:  make(map[int64]map[string]string),
	}
}

// SetNowFunc overrides the clock, for deterministic tests
func (r *PostRepository) SetNowFunc(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// SeedUser registers a post owner
func (r *PostRepository) SeedUser(id int64, nickname string, profilePath *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userRows[id] = &userRow{ID: id, Nickname: nickname, ProfilePath: profilePath}
}

// RankPosts computes the rank order in-process: haversine distance for
// distance mode, a ranking-window like count for popularity, with the same
// ordering contracts as the store-side queries.
func (r *PostRepository) RankPosts(_ context.Context, req posts.RankRequest) ([]posts.RankedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if req.Sort == posts.SortDistance && (req.ViewerLat == nil || req.ViewerLng == nil) {
		return nil, posts.ErrMissingViewerLocation
	}

	live := make([]*posts.Post, 0, len(r.postRows))
	for _, p := range r.postRows {
		if p.DeletedAt == nil {
			live = append(live, p)
		}
	}

	type scored struct {
		post     *posts.Post
		score    float64
		distance float64
	}
	rows := make([]scored, len(live))
	hasViewer := req.ViewerLat != nil && req.ViewerLng != nil
	for i, p := range live {
		row := scored{post: p}
		if hasViewer {
			row.distance = haversineMeters(*req.ViewerLat, *req.ViewerLng, p.Latitude, p.Longitude)
		}
		switch req.Sort {
		case posts.SortDistance:
			row.score = row.distance
		case posts.SortPopularity:
			row.score = float64(r.countWindowLikes(p.ID, req.WindowStart, req.WindowEnd))
		}
		rows[i] = row
	}

	newestFirst := func(a, b scored) bool {
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.post.ID > b.post.ID
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch req.Sort {
		case posts.SortDistance:
			if a.score != b.score {
				return a.score < b.score
			}
		case posts.SortPopularity:
			if a.score != b.score {
				return a.score > b.score
			}
			if hasViewer && a.distance != b.distance {
				return a.distance < b.distance
			}
		}
		return newestFirst(a, b)
	})

	start := req.Offset
	if start > len(rows) {
		start = len(rows)
	}
	end := start + req.Limit
	if end > len(rows) {
		end = len(rows)
	}

	ranked := make([]posts.RankedPost, 0, end-start)
	for _, row := range rows[start:end] {
		ranked = append(ranked, posts.RankedPost{ID: row.post.ID, Score: row.score})
	}
	return ranked, nil
}

func (r *PostRepository) countWindowLikes(postID int64, start, end time.Time) int {
	count := 0
	for _, l := range r.likeRows {
		if l.PostID != postID || l.DeletedAt != nil {
			continue
		}
		if !l.CreatedAt.Before(start) && l.CreatedAt.Before(end) {
			count++
		}
	}
	return count
}

// GetDetails builds full projections for live posts among ids
func (r *PostRepository) GetDetails(_ context.Context, ids []int64) (map[int64]*posts.PostDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	details := make(map[int64]*posts.PostDetail, len(ids))
	for _, id := range ids {
		p, ok := r.postRows[id]
		if !ok || p.DeletedAt != nil {
			continue
		}

		detail := &posts.PostDetail{
			ID:        p.ID,
			Address:   p.Address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		}
		if owner, ok := r.userRows[p.UserID]; ok {
			detail.Owner = posts.PostOwner{
				ID:          owner.ID,
				Nickname:    owner.Nickname,
				ProfilePath: owner.ProfilePath,
				Deleted:     owner.DeletedAt != nil,
			}
		}
		if fileSet, ok := r.postFiles[p.ID]; ok {
			if path, ok := fileSet[posts.UsagePostPhoto]; ok {
				photo := path
				detail.PhotoPath = &photo
			}
			if path, ok := fileSet[posts.UsageMapMarker]; ok {
				marker := path
				detail.MarkerPhotoPath = &marker
			}
		}
		for _, l := range r.likeRows {
			if l.PostID == p.ID && l.DeletedAt == nil {
				detail.LikerIDs = append(detail.LikerIDs, l.UserID)
			}
		}
		details[id] = detail
	}
	return details, nil
}

// CountLive returns the number of live posts
func (r *PostRepository) CountLive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.postRows {
		if p.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

// GetByID returns a live post row
func (r *PostRepository) GetByID(_ context.Context, id int64) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.postRows[id]
	if !ok || p.DeletedAt != nil {
		return nil, posts.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

// Create stores the post with its photo and marker-photo associations
func (r *PostRepository) Create(_ context.Context, post *posts.Post, photo, marker *posts.StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pathsTaken[photo.Path] || r.pathsTaken[marker.Path] {
		return files.ErrFileAlreadyExists
	}
	r.pathsTaken[photo.Path] = true
	r.pathsTaken[marker.Path] = true

	r.nextPostID++
	post.ID = r.nextPostID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.now()
	}

	copied := *post
	r.postRows[post.ID] = &copied
	r.postFiles[post.ID] = map[string]string{
		posts.UsagePostPhoto: photo.Path,
		posts.UsageMapMarker: marker.Path,
	}
	return nil
}

// SoftDelete marks a live post deleted
func (r *PostRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.postRows[id]
	if !ok || p.DeletedAt != nil {
		return posts.ErrPostNotFound
	}
	now := r.now()
	p.DeletedAt = &now
	return nil
}

// CreateLike records a like; at most one live like per (post, user)
func (r *PostRepository) CreateLike(_ context.Context, postID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.likeRows {
		if l.PostID == postID && l.UserID == userID && l.DeletedAt == nil {
			return posts.ErrAlreadyLiked
		}
	}
	r.likeRows = append(r.likeRows, &likeRow{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: r.now(),
	})
	return nil
}

// SoftDeleteLike marks the live like deleted, keeping the row
func (r *PostRepository) SoftDeleteLike(_ context.Context, postID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.likeRows {
		if l.PostID == postID && l.UserID == userID && l.DeletedAt == nil {
			now := r.now()
			l.DeletedAt = &now
			return nil
		}
	}
	return posts.ErrNotLiked
}

// haversineMeters computes the great-circle distance between two coordinate
// pairs, mirroring the store-side earth_distance expression
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
