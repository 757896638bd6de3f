package router

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the WebSocket route. Auth happens inside the
// handler because browsers cannot attach headers to the upgrade request.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
