package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Skyflower/internal/core/files"
	"Skyflower/internal/core/posts"
)

// APIError represents a JSON error response
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(APIError{Error: errorType, Message: message}); err != nil {
		log.Printf("ERROR: Failed to encode error response: %v", err)
	}
}

// writeJSON writes a JSON success response
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// handleServiceError maps post service errors to HTTP responses.
// Caller errors and store failures map to distinct classes so clients can
// tell their own faults from server faults.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, posts.ErrInvalidSortMode):
		writeError(w, http.StatusBadRequest, "InvalidSortMode", "sort must be one of: recent, distance, popularity")
	case errors.Is(err, posts.ErrMissingViewerLocation):
		writeError(w, http.StatusBadRequest, "MissingViewerLocation", "userLatitude and userLongitude are required for distance sort")
	case errors.Is(err, files.ErrFileAlreadyExists):
		writeError(w, http.StatusBadRequest, "FileAlreadyExists", "A file with this path already exists")
	case errors.Is(err, posts.ErrAlreadyLiked):
		writeError(w, http.StatusBadRequest, "AlreadyLiked", "The post is already liked")
	case errors.Is(err, posts.ErrNotLiked):
		writeError(w, http.StatusNotFound, "NotLiked", "The post is not liked")
	case errors.Is(err, posts.ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "Forbidden", "Only the post owner may delete it")
	case errors.Is(err, posts.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "PostNotFound", "The post does not exist")
	default:
		log.Printf("ERROR: Post service error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An error occurred while processing the request")
	}
}
