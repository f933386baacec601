package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Skyflower/internal/api/middleware"
	"Skyflower/internal/core/posts"
)

// DeletePostHandler handles post deletion
type DeletePostHandler struct {
	service posts.Service
}

// NewDeletePostHandler creates a new post deletion handler
func NewDeletePostHandler(service posts.Service) *DeletePostHandler {
	return &DeletePostHandler{service: service}
}

// HandleDeletePost soft-deletes a post owned by the viewer.
// DELETE /posts/{postID} — requires authentication.
func (h *DeletePostHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "User must be authenticated to delete posts")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "postID must be an integer")
		return
	}

	if err := h.service.DeletePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
