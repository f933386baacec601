package posts

import (
	"time"
)

// Sort modes accepted by the feed
const (
	SortRecent     = "recent"
	SortDistance   = "distance"
	SortPopularity = "popularity"
)

// File usage tags on post-file associations
const (
	UsagePostPhoto = "post_photo"
	UsageMapMarker = "map_marker"
)

// RankingCutoffHour is the hour at which the popularity ranking day rolls
// over. Before the cutoff the active window is yesterday's calendar day.
const RankingCutoffHour = 4

// Post represents a post row as stored
type Post struct {
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	Address   string     `json:"address" db:"address"`
	City      string     `json:"city" db:"city"`
	District  string     `json:"district" db:"district"`
	Town      string     `json:"town" db:"town"`
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Latitude  float64    `json:"latitude" db:"latitude"`
	Longitude float64    `json:"longitude" db:"longitude"`
}

// PostOwner is the owner slice of a post detail projection.
// ProfilePath is nil when the owner has no live profile image.
type PostOwner struct {
	ProfilePath *string
	Nickname    string
	ID          int64
	Deleted     bool
}

// PostDetail is the full projection loaded in the detail-fetch phase:
// owner, resolved file paths per usage tag, and the live like set.
type PostDetail struct {
	PhotoPath       *string
	MarkerPhotoPath *string
	Address         string
	LikerIDs        []int64
	Owner           PostOwner
	ID              int64
	Latitude        float64
	Longitude       float64
}

// RankedPost is a phase-1 result row: an identifier plus the computed
// rank score (distance in meters or window like count, mode-dependent).
type RankedPost struct {
	ID    int64
	Score float64
}

// FeedRequest carries the per-request feed state through the pipeline.
// Viewer fields are nil for anonymous requests.
type FeedRequest struct {
	ViewerID  *int64
	ViewerLat *float64
	ViewerLng *float64
	Sort      string
	Page      int
	Limit     int
}

// RankRequest is the phase-1 query input derived from a validated FeedRequest
type RankRequest struct {
	WindowStart time.Time
	WindowEnd   time.Time
	ViewerLat   *float64
	ViewerLng   *float64
	Sort        string
	Limit       int
	Offset      int
}

// CreatePostRequest is the input for creating a post. Photo and marker photo
// are storage paths already uploaded by the caller.
type CreatePostRequest struct {
	PhotoPath       string  `json:"photoUrl"`
	MarkerPhotoPath string  `json:"markerPhotoUrl"`
	Address         string  `json:"address,omitempty"`
	City            string  `json:"cityName,omitempty"`
	District        string  `json:"districtName,omitempty"`
	Town            string  `json:"townName,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

// PostEntry is the externally visible post projection, including the
// per-viewer derived fields (likeCount, isLiked).
type PostEntry struct {
	UserProfileURL *string `json:"userProfileUrl"`
	PhotoURL       *string `json:"photoUrl"`
	MarkerPhotoURL *string `json:"markerPhotoUrl"`
	UserNickname   string  `json:"userNickname"`
	Address        string  `json:"address"`
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LikeCount      int     `json:"likeCount"`
	IsDeletedUser  bool    `json:"isDeletedUser"`
	IsLiked        bool    `json:"isLiked"`
}

// PageInfo is the pagination metadata block of a feed page
type PageInfo struct {
	First           bool `json:"first"`
	Last            bool `json:"last"`
	CurrentElements int  `json:"currentElements"`
	Size            int  `json:"size"`
	TotalElements   int  `json:"totalElements"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
}

// FeedPage is the paginated feed response. Built fresh per request,
// never persisted.
type FeedPage struct {
	List []*PostEntry `json:"list"`
	PageInfo
}
