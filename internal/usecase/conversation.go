package usecase

import (
	"sort"
	"strings"

	"peermarket/internal/domain/entity"
	"peermarket/pkg/errors"
)

// NoProductScope is the sentinel segment for conversations that are not about
// any particular product, so every key carries exactly three segments.
const NoProductScope = "no-product"

// keySeparator must never appear inside participant or product IDs. UUIDs
// contain "-", so ":" is used.
const keySeparator = ":"

// ConversationKey builds the identity of the conversation between two users
// for one product scope. The participant pair is sorted so both sides compute
// the same key regardless of who is "me".
func ConversationKey(userA, userB, productID string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	if productID == "" {
		productID = NoProductScope
	}
	return strings.Join([]string{userA, userB, productID}, keySeparator)
}

// ParseConversationKey splits a key back into its two participants and
// product scope. The returned productID is empty for the no-product scope.
func ParseConversationKey(key string) (userA, userB, productID string, err error) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", errors.Validation("Malformed conversation key")
	}
	productID = parts[2]
	if productID == NoProductScope {
		productID = ""
	}
	return parts[0], parts[1], productID, nil
}

// CounterpartFromKey returns the participant that is not currentUserID, plus
// the product scope. Fails if the user is not part of the conversation.
func CounterpartFromKey(key, currentUserID string) (counterpartID, productID string, err error) {
	userA, userB, productID, err := ParseConversationKey(key)
	if err != nil {
		return "", "", err
	}

	switch currentUserID {
	case userA:
		return userB, productID, nil
	case userB:
		return userA, productID, nil
	default:
		return "", "", errors.Forbidden("User is not a participant in this conversation", nil)
	}
}

// ResolveActiveConversation picks the conversation a view should open: an
// explicit key wins, otherwise one is synthesized from the counterpart and
// product scope, otherwise none ("") and the caller shows a placeholder.
func ResolveActiveConversation(explicitKey, counterpartID, productID, currentUserID string) string {
	if explicitKey != "" {
		return explicitKey
	}
	if counterpartID != "" {
		return ConversationKey(currentUserID, counterpartID, productID)
	}
	return ""
}

// DeriveConversations folds a flat message list into per-conversation
// summaries for the viewing user. It is a pure function of its input: the
// same messages in any order produce the same groups, counts, and output
// order. Messages that do not involve the user are silently excluded.
func DeriveConversations(messages []*entity.Message, currentUserID string) []*entity.Conversation {
	groups := make(map[string]*entity.Conversation)

	for _, message := range messages {
		var counterpartID string
		switch currentUserID {
		case message.SenderID:
			counterpartID = message.ReceiverID
		case message.ReceiverID:
			counterpartID = message.SenderID
		default:
			continue
		}

		key := ConversationKey(currentUserID, counterpartID, message.ProductID)

		conv, ok := groups[key]
		if !ok {
			conv = &entity.Conversation{
				Key:           key,
				CounterpartID: counterpartID,
				ProductID:     message.ProductID,
			}
			groups[key] = conv
		}

		if conv.LastMessage == nil || laterMessage(message, conv.LastMessage) {
			conv.LastMessage = message
		}

		if message.ReceiverID == currentUserID && !message.Read {
			conv.UnreadCount++
		}
	}

	conversations := make([]*entity.Conversation, 0, len(groups))
	for _, conv := range groups {
		conversations = append(conversations, conv)
	}

	// Most recent activity first; key order breaks timestamp ties so
	// re-derivation is reproducible.
	sort.Slice(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage, conversations[j].LastMessage
		if a.CreatedAt.Equal(b.CreatedAt) {
			return conversations[i].Key < conversations[j].Key
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return conversations
}

// laterMessage reports whether a should replace b as the last message of a
// group. Equal timestamps fall back to ID order so the pick is deterministic.
func laterMessage(a, b *entity.Message) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
