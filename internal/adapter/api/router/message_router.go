package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
	"peermarket/internal/adapter/api/middleware"
)

// SetupMessageRouter sets up messaging routes. Conversations have no IDs of
// their own; threads are addressed by derived key or by counterpart.
func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.POST("", messageHandler.SendMessage)                     // POST /v1/messages - send a message
	messages.GET("/conversations", messageHandler.ListConversations)  // GET /v1/messages/conversations - derived conversation list
	messages.GET("/thread", messageHandler.GetThread)                 // GET /v1/messages/thread?key=|counterpart_id=&product_id= - open a thread
	messages.PUT("/thread/read", messageHandler.MarkThreadRead)       // PUT /v1/messages/thread/read - mark a thread read
}
