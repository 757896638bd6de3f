package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// Setup wires every route group onto the Echo instance.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	messageHandler *handler.MessageHandler,
	productHandler *handler.ProductHandler,
	ratingHandler *handler.RatingHandler,
	wishlistHandler *handler.WishlistHandler,
	profileHandler *handler.ProfileHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupMessageRouter(e, messageHandler, authMiddleware)
	SetupProductRouter(e, productHandler, authMiddleware)
	SetupRatingRouter(e, ratingHandler, authMiddleware)
	SetupWishlistRouter(e, wishlistHandler, authMiddleware)
	SetupProfileRouter(e, profileHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
