package handler

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/usecase"
	"peermarket/pkg/response"
)

type MessageHandler struct {
	messagingUseCase *usecase.MessagingUseCase
}

func NewMessageHandler(messagingUseCase *usecase.MessagingUseCase) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	ProductID  string `json:"product_id"`
	Content    string `json:"content" validate:"required"`
}

type markReadRequest struct {
	Key string `json:"key" validate:"required"`
}

// ListConversations returns the caller's conversation list, derived fresh
// from their message history on every call.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.messagingUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// GetThread opens one conversation. The client addresses it either by key or
// by counterpart (plus optional product scope); opening marks it read.
func (h *MessageHandler) GetThread(c echo.Context) error {
	userID := c.Get("uid").(string)

	thread, err := h.messagingUseCase.GetThread(
		c.Request().Context(),
		userID,
		c.QueryParam("key"),
		c.QueryParam("counterpart_id"),
		c.QueryParam("product_id"),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, thread)
}

// SendMessage delivers a message and returns it together with the canonical
// key of the conversation it now belongs to.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, key, err := h.messagingUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ReceiverID: req.ReceiverID,
		ProductID:  req.ProductID,
		Content:    req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"message":          message,
		"conversation_key": key,
	})
}

// MarkThreadRead marks every unread message in the keyed conversation as
// read and reports how many transitioned.
func (h *MessageHandler) MarkThreadRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	count, err := h.messagingUseCase.MarkThreadRead(c.Request().Context(), userID, req.Key)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"marked_read": count})
}
