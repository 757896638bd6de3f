package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// SetupRatingRouter sets up seller rating routes. Summaries and review lists
// are public; submitting a rating requires authentication.
func SetupRatingRouter(e *echo.Echo, ratingHandler *handler.RatingHandler, authMiddleware *middleware.AuthMiddleware) {
	sellers := e.Group("/v1/sellers")

	sellers.GET("/:id/ratings", ratingHandler.ListSellerRatings)       // GET /v1/sellers/:id/ratings - reviews, newest first
	sellers.GET("/:id/ratings/summary", ratingHandler.GetSellerSummary) // GET /v1/sellers/:id/ratings/summary - recomputed aggregate

	ratings := e.Group("/v1/ratings")
	ratings.Use(authMiddleware.Authenticate)
	ratings.POST("", ratingHandler.RateSeller)                         // POST /v1/ratings - rate a product's seller
}
