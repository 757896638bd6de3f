package repository

import (
	"context"

	"peermarket/internal/domain/entity"
)

type MessageRepository interface {
	// Create persists a new message. ID and CreatedAt are assigned by the
	// store; Read is forced to false.
	Create(ctx context.Context, message *entity.Message) error

	// ListByParticipant returns every message where the user is sender or
	// receiver, newest first.
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Message, error)

	// ListConversation returns both directions of traffic between two users
	// for one product scope (empty productID = the no-product scope), oldest
	// first.
	ListConversation(ctx context.Context, userA, userB, productID string) ([]*entity.Message, error)

	// MarkConversationRead flips read=true on every unread message addressed
	// to receiverID from senderID in the given product scope and returns how
	// many rows transitioned. The unread set is computed immediately before
	// the update, not from a caller-side snapshot.
	MarkConversationRead(ctx context.Context, receiverID, senderID, productID string) (int64, error)
}
