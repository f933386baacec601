package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Skyflower/internal/api/middleware"
	"Skyflower/internal/core/posts"
)

// GetPostHandler serves single post detail
type GetPostHandler struct {
	service posts.Service
}

// NewGetPostHandler creates a new post detail handler
func NewGetPostHandler(service posts.Service) *GetPostHandler {
	return &GetPostHandler{service: service}
}

// HandleGetPost returns the projection of a single live post.
// GET /posts/{postID}
func (h *GetPostHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "postID must be an integer")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserID(r); ok {
		viewerID = &id
	}

	entry, err := h.service.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
