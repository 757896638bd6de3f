package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()
	message.Read = false

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Message, error) {
	// Firestore has no OR across fields; fetch sent and received separately
	// and merge.
	sent, err := r.collect(ctx, r.client.Collection("messages").Where("senderId", "==", userID))
	if err != nil {
		return nil, err
	}

	received, err := r.collect(ctx, r.client.Collection("messages").Where("receiverId", "==", userID))
	if err != nil {
		return nil, err
	}

	messages := append(sent, received...)
	sortMessagesDesc(messages)

	return messages, nil
}

func (r *firestoreMessageRepository) ListConversation(ctx context.Context, userA, userB, productID string) ([]*entity.Message, error) {
	outbound, err := r.collect(ctx, r.client.Collection("messages").
		Where("senderId", "==", userA).
		Where("receiverId", "==", userB).
		Where("productId", "==", productID))
	if err != nil {
		return nil, err
	}

	inbound, err := r.collect(ctx, r.client.Collection("messages").
		Where("senderId", "==", userB).
		Where("receiverId", "==", userA).
		Where("productId", "==", productID))
	if err != nil {
		return nil, err
	}

	messages := append(outbound, inbound...)
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

func (r *firestoreMessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID, productID string) (int64, error) {
	// Query the unread set right here so a message that arrives after this
	// query keeps read=false; a fresh one may still be swept in, which is
	// acceptable for a UX signal.
	query := r.client.Collection("messages").
		Where("receiverId", "==", receiverID).
		Where("senderId", "==", senderID).
		Where("productId", "==", productID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query unread messages", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	batch := r.client.Batch()
	for _, doc := range docs {
		batch.Update(doc.Ref, []firestore.Update{
			{Path: "read", Value: true},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return 0, errors.Internal("Failed to update message read state", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreMessageRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Message, error) {
	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message row %s: %v", doc.Ref.ID, err)
			continue
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

func sortMessagesDesc(messages []*entity.Message) {
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID > messages[j].ID
		}
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}
