package routes

import (
	"Skyflower/internal/api/handlers/user"
	"Skyflower/internal/api/middleware"
	usersCore "Skyflower/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers profile endpoints
func RegisterUserRoutes(
	r chi.Router,
	userService usersCore.Service,
	authMiddleware *middleware.AuthMiddleware,
) {
	profileHandler := user.NewProfileHandler(userService)

	r.Route("/users", func(r chi.Router) {
		r.Get("/nickname", profileHandler.HandleCheckNickname)
		r.With(authMiddleware.RequireAuth).Get("/me", profileHandler.HandleGetMe)
		r.With(authMiddleware.RequireAuth).Patch("/me", profileHandler.HandleUpdateProfile)
	})
}
