package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// SetupProfileRouter sets up profile routes. Public profiles are readable by
// anyone; "me" routes require authentication.
func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	profiles := e.Group("/v1/profiles")
	profiles.GET("/:id", profileHandler.GetProfile) // GET /v1/profiles/:id - public profile

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", profileHandler.GetMe)          // GET /v1/me - own profile, created on first login
	me.PATCH("", profileHandler.UpdateProfile) // PATCH /v1/me - edit own profile
}
