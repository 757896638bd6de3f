package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"peermarket/internal/infrastructure/firebase"
	ws "peermarket/internal/infrastructure/websocket"
	"peermarket/pkg/errors"
)

type WebSocketHandler struct {
	wsManager  *ws.Manager
	authClient *firebase.AuthClient
	upgrader   gorillaws.Upgrader
}

// NewWebSocketHandler builds the handler with upgrades restricted to the
// configured client origin. Requests without an Origin header (non-browser
// clients) are allowed; those authenticate with the token like everyone else.
func NewWebSocketHandler(wsManager *ws.Manager, authClient *firebase.AuthClient, clientOrigin string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:  wsManager,
		authClient: authClient,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == clientOrigin
			},
		},
	}
}

// HandleWebSocket upgrades the connection and registers the client for
// conversation_updated nudges. Browsers cannot set headers on WebSocket
// requests, so the ID token arrives as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication token is required", nil)
	}

	userID, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
