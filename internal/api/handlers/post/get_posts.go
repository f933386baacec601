package post

import (
	"net/http"
	"strconv"

	"Skyflower/internal/api/middleware"
	"Skyflower/internal/core/posts"
)

// GetPostsHandler serves the paginated post feed
type GetPostsHandler struct {
	service posts.Service
}

// NewGetPostsHandler creates a new feed handler
func NewGetPostsHandler(service posts.Service) *GetPostsHandler {
	return &GetPostsHandler{service: service}
}

// HandleGetPosts returns one feed page.
// GET /posts?page=1&limit=10&sort=popularity&userLatitude=37.0&userLongitude=127.0
// Auth is optional; the viewer identity only drives the isLiked field.
func (h *GetPostsHandler) HandleGetPosts(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	page, err := h.service.GetFeed(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// parseRequest parses query parameters into a FeedRequest
func (h *GetPostsHandler) parseRequest(r *http.Request) (posts.FeedRequest, error) {
	query := r.URL.Query()
	req := posts.FeedRequest{}

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		return req, posts.NewValidationError("page", "page must be a positive integer")
	}
	req.Page = page

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		return req, posts.NewValidationError("limit", "limit must be a positive integer")
	}
	req.Limit = limit

	req.Sort = query.Get("sort")

	if raw := query.Get("userLatitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, posts.NewValidationError("userLatitude", "userLatitude must be a number")
		}
		req.ViewerLat = &lat
	}
	if raw := query.Get("userLongitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, posts.NewValidationError("userLongitude", "userLongitude must be a number")
		}
		req.ViewerLng = &lng
	}

	if viewerID, ok := middleware.GetUserID(r); ok {
		req.ViewerID = &viewerID
	}

	return req, nil
}
