package routes

import (
	"Skyflower/internal/api/handlers/post"
	"Skyflower/internal/api/middleware"
	postsCore "Skyflower/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers feed, post, and like endpoints.
// Reads take optional auth (viewer identity only drives isLiked);
// mutations require it.
func RegisterPostRoutes(
	r chi.Router,
	postService postsCore.Service,
	authMiddleware *middleware.AuthMiddleware,
) {
	getPostsHandler := post.NewGetPostsHandler(postService)
	getPostHandler := post.NewGetPostHandler(postService)
	createPostHandler := post.NewCreatePostHandler(postService)
	deletePostHandler := post.NewDeletePostHandler(postService)
	likePostHandler := post.NewLikePostHandler(postService)

	r.Route("/posts", func(r chi.Router) {
		r.With(authMiddleware.OptionalAuth).Get("/", getPostsHandler.HandleGetPosts)
		r.With(authMiddleware.RequireAuth).Post("/", createPostHandler.HandleCreatePost)

		r.Route("/{postID}", func(r chi.Router) {
			r.With(authMiddleware.OptionalAuth).Get("/", getPostHandler.HandleGetPost)
			r.With(authMiddleware.RequireAuth).Delete("/", deletePostHandler.HandleDeletePost)
			r.With(authMiddleware.RequireAuth).Post("/like", likePostHandler.HandleLikePost)
			r.With(authMiddleware.RequireAuth).Delete("/like", likePostHandler.HandleUnlikePost)
		})
	})
}
