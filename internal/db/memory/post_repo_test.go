package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Skyflower/internal/core/posts"
)

func seedPost(t *testing.T, repo *PostRepository, userID int64, lat, lng float64, createdAt time.Time) *posts.Post {
	t.Helper()

	post := &posts.Post{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: createdAt,
	}
	// Paths are unique per call; file rows are unique by path
	photo := &posts.StoredFile{
		OriginalName: "photo", Extension: "jpg", FileType: "image",
		Path: fmt.Sprintf("uploads/%d/photo-%d.jpg", userID, seq()),
	}
	marker := &posts.StoredFile{
		OriginalName: "marker", Extension: "png", FileType: "image",
		Path: fmt.Sprintf("uploads/%d/marker-%d.png", userID, seq()),
	}

	require.NoError(t, repo.Create(context.Background(), post, photo, marker))
	return post
}

var seqCounter int64

func seq() int64 {
	seqCounter++
	return seqCounter
}

func newFeedService(repo *PostRepository) posts.Service {
	return posts.NewPostService(repo, nil)
}

func TestDistanceRanking(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// Identical timestamps so ordering is decided by distance alone
	far := seedPost(t, repo, 1, 37.0, 127.2, created)
	near := seedPost(t, repo, 1, 37.0, 127.05, created)

	page, err := svc.GetFeed(ctx, posts.FeedRequest{
		Page: 1, Limit: 10, Sort: posts.SortDistance,
		ViewerLat: ptr(37.0), ViewerLng: ptr(127.0),
	})
	require.NoError(t, err)

	require.Len(t, page.List, 2)
	assert.Equal(t, near.ID, page.List[0].ID)
	assert.Equal(t, far.ID, page.List[1].ID)
}

func TestDistanceRankingTieBreaksNewestFirst(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	// Same location, different creation times
	older := seedPost(t, repo, 1, 37.0, 127.05, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	newer := seedPost(t, repo, 1, 37.0, 127.05, time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC))

	page, err := svc.GetFeed(ctx, posts.FeedRequest{
		Page: 1, Limit: 10, Sort: posts.SortDistance,
		ViewerLat: ptr(37.0), ViewerLng: ptr(127.0),
	})
	require.NoError(t, err)

	require.Len(t, page.List, 2)
	assert.Equal(t, newer.ID, page.List[0].ID)
	assert.Equal(t, older.ID, page.List[1].ID)
}

func TestPopularityRanking(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	// Freeze the clock past the cutoff so likes land inside today's window
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	repo.SetNowFunc(func() time.Time { return now })

	created := now.Add(-48 * time.Hour)
	threeLikes := seedPost(t, repo, 1, 37.0, 127.0, created)
	fiveLikes := seedPost(t, repo, 1, 37.0, 127.0, created.Add(time.Hour))

	for userID := int64(10); userID < 13; userID++ {
		require.NoError(t, repo.CreateLike(ctx, threeLikes.ID, userID))
	}
	for userID := int64(10); userID < 15; userID++ {
		require.NoError(t, repo.CreateLike(ctx, fiveLikes.ID, userID))
	}

	page, err := svc.GetFeed(ctx, posts.FeedRequest{Page: 1, Limit: 10, Sort: posts.SortPopularity})
	require.NoError(t, err)

	// Higher window like count wins regardless of creation order
	require.Len(t, page.List, 2)
	assert.Equal(t, fiveLikes.ID, page.List[0].ID)
	assert.Equal(t, 5, page.List[0].LikeCount)
	assert.Equal(t, threeLikes.ID, page.List[1].ID)
}

func TestPopularityIgnoresLikesOutsideWindow(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	liked := seedPost(t, repo, 1, 37.0, 127.0, created)
	unliked := seedPost(t, repo, 1, 37.0, 127.0, created.Add(time.Hour))

	// Likes recorded two days ago fall outside any current window
	repo.SetNowFunc(func() time.Time { return time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC) })
	for userID := int64(10); userID < 14; userID++ {
		require.NoError(t, repo.CreateLike(ctx, liked.ID, userID))
	}

	repo.SetNowFunc(func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) })

	page, err := svc.GetFeed(ctx, posts.FeedRequest{Page: 1, Limit: 10, Sort: posts.SortPopularity})
	require.NoError(t, err)

	// All window counts are zero, so creation time decides: newest first.
	// The stale likes still show in likeCount, which reflects all live likes.
	require.Len(t, page.List, 2)
	assert.Equal(t, unliked.ID, page.List[0].ID)
	assert.Equal(t, liked.ID, page.List[1].ID)
	assert.Equal(t, 4, page.List[1].LikeCount)
}

func TestRecentRankingAndPagination(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedPost(t, repo, 1, 37.0, 127.0, base.Add(time.Duration(i)*time.Hour))
	}

	first, err := svc.GetFeed(ctx, posts.FeedRequest{Page: 1, Limit: 10, Sort: posts.SortRecent})
	require.NoError(t, err)
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.Equal(t, 10, first.CurrentElements)
	assert.Equal(t, 25, first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 1, first.CurrentPage)

	// Newest post leads the first page
	newestFirst := first.List[0].ID
	for _, entry := range first.List[1:] {
		assert.Less(t, entry.ID, newestFirst)
		newestFirst = entry.ID
	}

	last, err := svc.GetFeed(ctx, posts.FeedRequest{Page: 3, Limit: 10, Sort: posts.SortRecent})
	require.NoError(t, err)
	assert.True(t, last.Last)
	assert.Equal(t, 5, last.CurrentElements)
}

func TestSoftDeletedPostsLeaveFeedAndTotals(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	keep := seedPost(t, repo, 1, 37.0, 127.0, created)
	gone := seedPost(t, repo, 1, 37.0, 127.0, created.Add(time.Hour))

	require.NoError(t, svc.DeletePost(ctx, 1, gone.ID))

	page, err := svc.GetFeed(ctx, posts.FeedRequest{Page: 1, Limit: 10, Sort: posts.SortRecent})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, keep.ID, page.List[0].ID)
	assert.Equal(t, 1, page.TotalElements)

	_, err = svc.GetPost(ctx, gone.ID, nil)
	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestLikeLifecycle(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	svc := newFeedService(repo)
	ctx := context.Background()

	post := seedPost(t, repo, 1, 37.0, 127.0, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	// Like, then a second like fails with no state change
	require.NoError(t, svc.LikePost(ctx, 42, post.ID))
	assert.ErrorIs(t, svc.LikePost(ctx, 42, post.ID), posts.ErrAlreadyLiked)

	entry, err := svc.GetPost(ctx, post.ID, ptr(int64(42)))
	require.NoError(t, err)
	assert.Equal(t, 1, entry.LikeCount)
	assert.True(t, entry.IsLiked)

	// Unlike, then a second unlike fails with no state change
	require.NoError(t, svc.UnlikePost(ctx, 42, post.ID))
	assert.ErrorIs(t, svc.UnlikePost(ctx, 42, post.ID), posts.ErrNotLiked)

	entry, err = svc.GetPost(ctx, post.ID, ptr(int64(42)))
	require.NoError(t, err)
	assert.Equal(t, 0, entry.LikeCount)
	assert.False(t, entry.IsLiked)

	// Re-like after unlike works again
	require.NoError(t, svc.LikePost(ctx, 42, post.ID))
}

func TestRankPagingHappensBeforeDetailFetch(t *testing.T) {
	repo := NewPostRepository()
	repo.SeedUser(1, "mina", nil)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedPost(t, repo, 1, 37.0, 127.0, base.Add(time.Duration(i)*time.Hour))
	}

	ranked, err := repo.RankPosts(ctx, posts.RankRequest{
		Sort: posts.SortRecent, Limit: 3, Offset: 5,
	})
	require.NoError(t, err)
	assert.Len(t, ranked, 2)

	ranked, err = repo.RankPosts(ctx, posts.RankRequest{
		Sort: posts.SortRecent, Limit: 3, Offset: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func ptr[T any](v T) *T { return &v }
