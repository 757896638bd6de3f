package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// SetupWishlistRouter sets up wishlist routes; all require authentication.
func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	wishlist := e.Group("/v1/wishlist")
	wishlist.Use(authMiddleware.Authenticate)

	wishlist.POST("", wishlistHandler.AddToWishlist)                      // POST /v1/wishlist - add product
	wishlist.GET("", wishlistHandler.GetWishlist)                         // GET /v1/wishlist - list with product cards
	wishlist.GET("/count", wishlistHandler.GetWishlistCount)              // GET /v1/wishlist/count - badge count
	wishlist.GET("/check/:productId", wishlistHandler.CheckWishlist)      // GET /v1/wishlist/check/:productId - membership check
	wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)    // DELETE /v1/wishlist/:productId - remove product
}
