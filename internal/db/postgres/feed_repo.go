package postgres

import (
	"context"
	"fmt"

	"Skyflower/internal/core/posts"
)

// Rank queries return ordered (id, score) pairs only; full detail is loaded
// in a second phase. Distance and popularity need query forms the structured
// path can't express (geodesic distance, conditional time-windowed
// aggregation), so their SQL lives here, behind the Repository interface.
//
// DATABASE REQUIREMENTS:
// - cube + earthdistance extensions (earth_distance / ll_to_earth)
// - idx_posts_live_created ON posts(created_at DESC) WHERE deleted_at IS NULL
// - idx_post_likes_live_post ON post_likes(post_id) WHERE deleted_at IS NULL

// earthDistanceExpr builds the great-circle distance expression from the
// viewer placeholders to the post row, in meters. Placeholders keep viewer
// coordinates out of the query text.
func earthDistanceExpr(latParam, lngParam int) string {
	return fmt.Sprintf(
		"earth_distance(ll_to_earth($%d, $%d), ll_to_earth(p.latitude, p.longitude))",
		latParam, lngParam,
	)
}

// RankPosts executes the phase-1 rank query for the requested sort mode.
// Every mode filters to live posts and applies limit/offset before any
// detail is materialized.
func (r *postgresPostRepo) RankPosts(ctx context.Context, req posts.RankRequest) ([]posts.RankedPost, error) {
	switch req.Sort {
	case posts.SortRecent:
		return r.rankRecent(ctx, req)
	case posts.SortDistance:
		return r.rankByDistance(ctx, req)
	case posts.SortPopularity:
		return r.rankByPopularity(ctx, req)
	default:
		return nil, posts.ErrInvalidSortMode
	}
}

// rankRecent orders by creation time descending. No computed score.
func (r *postgresPostRepo) rankRecent(ctx context.Context, req posts.RankRequest) ([]posts.RankedPost, error) {
	query := `
		SELECT p.id, 0::float8 AS score
		FROM posts p
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryRanked(ctx, query, req.Limit, req.Offset)
}

// rankByDistance orders by distance from the viewer ascending, newest first
// on ties. The distance is computed in the query so the store can apply
// limit/offset before materializing rows.
func (r *postgresPostRepo) rankByDistance(ctx context.Context, req posts.RankRequest) ([]posts.RankedPost, error) {
	if req.ViewerLat == nil || req.ViewerLng == nil {
		return nil, posts.ErrMissingViewerLocation
	}

	query := fmt.Sprintf(`
		SELECT p.id, %s AS distance
		FROM posts p
		WHERE p.deleted_at IS NULL
		ORDER BY distance ASC, p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, earthDistanceExpr(1, 2))

	return r.queryRanked(ctx, query, *req.ViewerLat, *req.ViewerLng, req.Limit, req.Offset)
}

// rankByPopularity orders by the count of live likes created inside the
// ranking window, then distance ascending when viewer coordinates are
// supplied, then newest first. Likes outside the window or soft-deleted
// contribute zero but the posts themselves stay in the result.
func (r *postgresPostRepo) rankByPopularity(ctx context.Context, req posts.RankRequest) ([]posts.RankedPost, error) {
	const windowLikes = `COUNT(l.id) FILTER (
			WHERE l.created_at >= $1 AND l.created_at < $2 AND l.deleted_at IS NULL
		)::float8`

	if req.ViewerLat != nil && req.ViewerLng != nil {
		query := fmt.Sprintf(`
			SELECT p.id, %s AS window_likes, %s AS distance
			FROM posts p
			LEFT JOIN post_likes l ON l.post_id = p.id
			WHERE p.deleted_at IS NULL
			GROUP BY p.id
			ORDER BY window_likes DESC, distance ASC, p.created_at DESC, p.id DESC
			LIMIT $5 OFFSET $6
		`, windowLikes, earthDistanceExpr(3, 4))

		return r.queryRankedWithDistance(ctx, query,
			req.WindowStart, req.WindowEnd, *req.ViewerLat, *req.ViewerLng, req.Limit, req.Offset)
	}

	query := fmt.Sprintf(`
		SELECT p.id, %s AS window_likes
		FROM posts p
		LEFT JOIN post_likes l ON l.post_id = p.id
		WHERE p.deleted_at IS NULL
		GROUP BY p.id
		ORDER BY window_likes DESC, p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, windowLikes)

	return r.queryRanked(ctx, query, req.WindowStart, req.WindowEnd, req.Limit, req.Offset)
}

func (r *postgresPostRepo) queryRanked(ctx context.Context, query string, args ...interface{}) ([]posts.RankedPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post ranking: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ranked []posts.RankedPost
	for rows.Next() {
		var rp posts.RankedPost
		if err := rows.Scan(&rp.ID, &rp.Score); err != nil {
			return nil, fmt.Errorf("failed to scan ranked post: %w", err)
		}
		ranked = append(ranked, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post ranking: %w", err)
	}
	return ranked, nil
}

func (r *postgresPostRepo) queryRankedWithDistance(ctx context.Context, query string, args ...interface{}) ([]posts.RankedPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post ranking: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ranked []posts.RankedPost
	for rows.Next() {
		var rp posts.RankedPost
		var distance float64
		if err := rows.Scan(&rp.ID, &rp.Score, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan ranked post: %w", err)
		}
		ranked = append(ranked, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post ranking: %w", err)
	}
	return ranked, nil
}
