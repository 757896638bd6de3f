package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

// ConversationNotifier pushes cache-invalidation nudges to connected users.
// Payloads never carry message bodies; recipients re-fetch and re-derive.
type ConversationNotifier interface {
	SendToUser(userID string, payload []byte)
}

// MessageRateLimiter throttles per-user actions.
type MessageRateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

type MessagingUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	notifier    ConversationNotifier
	rateLimiter MessageRateLimiter
}

func NewMessagingUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	notifier ConversationNotifier,
	rateLimiter MessageRateLimiter,
) *MessagingUseCase {
	return &MessagingUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		notifier:    notifier,
		rateLimiter: rateLimiter,
	}
}

// SendMessageInput is the payload for sending a message. The conversation is
// addressed by receiver and optional product scope, never by a stored thread ID.
type SendMessageInput struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	ProductID  string `json:"product_id"`
	Content    string `json:"content" validate:"required"`
}

// Thread is the full view of one conversation: its oldest-first messages plus
// the enriched counterpart and product scope.
type Thread struct {
	Key         string            `json:"key"`
	Counterpart *entity.User      `json:"counterpart"`
	Product     *entity.Product   `json:"product,omitempty"`
	Messages    []*entity.Message `json:"messages"`
}

// ListConversations derives the user's conversation list from their complete
// message history. Enrichment failures degrade to placeholders so one missing
// profile or product row never hides a conversation.
func (uc *MessagingUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	messages, err := uc.messageRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := DeriveConversations(messages, userID)

	userCache := make(map[string]*entity.User)
	productCache := make(map[string]*entity.Product)

	for _, conv := range conversations {
		conv.Counterpart = uc.lookupUser(ctx, userCache, conv.CounterpartID)
		if conv.ProductID != "" {
			conv.Product = uc.lookupProduct(ctx, productCache, conv.ProductID)
		}
	}

	return conversations, nil
}

// GetThread resolves which conversation to open, loads its messages oldest
// first, and marks everything addressed to the viewer as read. Viewing is the
// read trigger; there is no separate acknowledgement call.
func (uc *MessagingUseCase) GetThread(ctx context.Context, currentUserID, explicitKey, counterpartID, productID string) (*Thread, error) {
	key := ResolveActiveConversation(explicitKey, counterpartID, productID, currentUserID)
	if key == "" {
		return nil, errors.Validation("Conversation key or counterpart is required")
	}

	resolvedCounterpart, resolvedProduct, err := CounterpartFromKey(key, currentUserID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListConversation(ctx, currentUserID, resolvedCounterpart, resolvedProduct)
	if err != nil {
		return nil, err
	}

	userCache := make(map[string]*entity.User)
	productCache := make(map[string]*entity.Product)

	thread := &Thread{
		Key:         key,
		Counterpart: uc.lookupUser(ctx, userCache, resolvedCounterpart),
		Messages:    messages,
	}
	if resolvedProduct != "" {
		thread.Product = uc.lookupProduct(ctx, productCache, resolvedProduct)
	}

	for _, message := range messages {
		message.Sender = uc.lookupUser(ctx, userCache, message.SenderID)
	}

	if _, err := uc.MarkThreadRead(ctx, currentUserID, key); err != nil {
		logger.Warn("Failed to mark thread %s read for %s: %v", key, currentUserID, err)
	}

	return thread, nil
}

// SendMessage validates, rate limits, persists, and returns the enriched
// message plus the canonical key of the conversation it now belongs to. Both
// participants get a conversation_updated nudge.
func (uc *MessagingUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, string, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, "", errors.Validation("Message content cannot be empty")
	}
	if input.ReceiverID == senderID {
		return nil, "", errors.Validation("Cannot send a message to yourself")
	}

	receiver, err := uc.userRepo.GetByID(ctx, input.ReceiverID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, "", errors.NotFound("Receiver", err)
		}
		return nil, "", err
	}

	var product *entity.Product
	if input.ProductID != "" {
		product, err = uc.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, "", errors.NotFound("Product", err)
			}
			return nil, "", err
		}
	}

	if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, "", errors.TooManyRequests(
			fmt.Sprintf("Too many messages, try again in %s", wait.Round(time.Second)))
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		ProductID:  input.ProductID,
		Content:    content,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, "", err
	}

	key := ConversationKey(senderID, input.ReceiverID, input.ProductID)

	message.Receiver = receiver
	message.Product = product
	if sender, err := uc.userRepo.GetByID(ctx, senderID); err == nil {
		message.Sender = sender
	}

	uc.notifyConversationUpdated(key, senderID, input.ReceiverID)

	return message, key, nil
}

// MarkThreadRead flips every unread message addressed to the user in the
// keyed conversation and returns the transition count. Calling it twice is
// harmless; the second call finds nothing unread.
func (uc *MessagingUseCase) MarkThreadRead(ctx context.Context, currentUserID, key string) (int64, error) {
	counterpartID, productID, err := CounterpartFromKey(key, currentUserID)
	if err != nil {
		return 0, err
	}

	count, err := uc.messageRepo.MarkConversationRead(ctx, currentUserID, counterpartID, productID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		uc.notifyConversationUpdated(key, currentUserID, counterpartID)
	}

	return count, nil
}

func (uc *MessagingUseCase) notifyConversationUpdated(key string, userIDs ...string) {
	if uc.notifier == nil {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"type": "conversation_updated",
		"key":  key,
	})
	if err != nil {
		logger.Error("Failed to marshal conversation event: %v", err)
		return
	}

	for _, userID := range userIDs {
		uc.notifier.SendToUser(userID, payload)
	}
}

// lookupUser fetches a profile through a per-request cache. A failed lookup
// yields a placeholder rather than an error; the conversation still renders.
func (uc *MessagingUseCase) lookupUser(ctx context.Context, cache map[string]*entity.User, userID string) *entity.User {
	if user, ok := cache[userID]; ok {
		return user
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load profile %s: %v", userID, err)
		user = &entity.User{ID: userID, FullName: "Unknown User"}
	}

	cache[userID] = user
	return user
}

// lookupProduct is the product-side twin of lookupUser, except a missing
// product stays nil; the client shows the conversation without a product card.
func (uc *MessagingUseCase) lookupProduct(ctx context.Context, cache map[string]*entity.Product, productID string) *entity.Product {
	if product, ok := cache[productID]; ok {
		return product
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Warn("Failed to load product %s: %v", productID, err)
		product = nil
	}

	cache[productID] = product
	return product
}
