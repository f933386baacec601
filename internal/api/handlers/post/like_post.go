package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Skyflower/internal/api/middleware"
	"Skyflower/internal/core/posts"
)

// LikePostHandler handles like and unlike operations
type LikePostHandler struct {
	service posts.Service
}

// NewLikePostHandler creates a new like handler
func NewLikePostHandler(service posts.Service) *LikePostHandler {
	return &LikePostHandler{service: service}
}

// HandleLikePost records a like on a post.
// POST /posts/{postID}/like — requires authentication.
// Liking twice without an intervening unlike fails with AlreadyLiked.
func (h *LikePostHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := h.parseParams(w, r)
	if !ok {
		return
	}

	if err := h.service.LikePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleUnlikePost removes the viewer's live like.
// DELETE /posts/{postID}/like — requires authentication.
func (h *LikePostHandler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := h.parseParams(w, r)
	if !ok {
		return
	}

	if err := h.service.UnlikePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LikePostHandler) parseParams(w http.ResponseWriter, r *http.Request) (userID, postID int64, ok bool) {
	userID, ok = middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "User must be authenticated to like posts")
		return 0, 0, false
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "postID must be an integer")
		return 0, 0, false
	}
	return userID, postID, true
}
