package usecase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peermarket/internal/domain/entity"
)

func msg(id, from, to, productID, content string, read bool, t int64) *entity.Message {
	return &entity.Message{
		ID:         id,
		SenderID:   from,
		ReceiverID: to,
		ProductID:  productID,
		Content:    content,
		Read:       read,
		CreatedAt:  time.Unix(t, 0),
	}
}

func TestConversationKeySymmetric(t *testing.T) {
	assert.Equal(t, ConversationKey("alice", "bob", "p1"), ConversationKey("bob", "alice", "p1"))
	assert.Equal(t, "alice:bob:p1", ConversationKey("bob", "alice", "p1"))
}

func TestConversationKeyNoProductSentinel(t *testing.T) {
	assert.Equal(t, "alice:bob:no-product", ConversationKey("alice", "bob", ""))
}

func TestConversationKeyDistinguishesProductScopes(t *testing.T) {
	assert.NotEqual(t, ConversationKey("alice", "bob", "p1"), ConversationKey("alice", "bob", "p2"))
	assert.NotEqual(t, ConversationKey("alice", "bob", "p1"), ConversationKey("alice", "bob", ""))
}

func TestParseConversationKey(t *testing.T) {
	userA, userB, productID, err := ParseConversationKey("alice:bob:p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", userA)
	assert.Equal(t, "bob", userB)
	assert.Equal(t, "p1", productID)

	_, _, productID, err = ParseConversationKey("alice:bob:no-product")
	require.NoError(t, err)
	assert.Empty(t, productID)

	for _, malformed := range []string{"", "alice", "alice:bob", "alice::p1", "a:b:c:d"} {
		_, _, _, err := ParseConversationKey(malformed)
		assert.Error(t, err, "key %q should not parse", malformed)
	}
}

func TestParseConversationKeyHandlesUUIDParticipants(t *testing.T) {
	// Participant IDs contain dashes; the separator must not split them.
	a := "0b3e6c5e-4a18-4f2b-9d6a-111111111111"
	b := "f6d2a9c1-8e07-4f3c-b5d2-222222222222"

	userA, userB, productID, err := ParseConversationKey(ConversationKey(a, b, ""))
	require.NoError(t, err)
	assert.Equal(t, a, userA)
	assert.Equal(t, b, userB)
	assert.Empty(t, productID)
}

func TestCounterpartFromKey(t *testing.T) {
	key := ConversationKey("alice", "bob", "p1")

	counterpart, productID, err := CounterpartFromKey(key, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", counterpart)
	assert.Equal(t, "p1", productID)

	counterpart, _, err = CounterpartFromKey(key, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", counterpart)

	_, _, err = CounterpartFromKey(key, "mallory")
	require.Error(t, err)
	assert.True(t, appErrorCode(err, "FORBIDDEN"))
}

func TestResolveActiveConversation(t *testing.T) {
	explicit := ConversationKey("alice", "bob", "p1")

	assert.Equal(t, explicit, ResolveActiveConversation(explicit, "carol", "p9", "alice"))
	assert.Equal(t, ConversationKey("alice", "bob", ""), ResolveActiveConversation("", "bob", "", "alice"))
	assert.Empty(t, ResolveActiveConversation("", "", "", "alice"))
}

func TestResolveActiveConversationMatchesDerivedKey(t *testing.T) {
	// A synthesized key must equal the key a future message between the same
	// pair would be grouped under.
	synthesized := ResolveActiveConversation("", "B", "", "A")

	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "", "hello", false, 1),
	}, "A")

	require.Len(t, conversations, 1)
	assert.Equal(t, synthesized, conversations[0].Key)
}

func TestDeriveConversationsSingleUnread(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "", "hi", false, 1),
	}, "B")

	require.Len(t, conversations, 1)
	assert.Equal(t, 1, conversations[0].UnreadCount)
	assert.Equal(t, "hi", conversations[0].LastMessage.Content)
	assert.Equal(t, "A", conversations[0].CounterpartID)
}

func TestDeriveConversationsGroupsBothDirections(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "", "ping", false, 1),
		msg("m2", "B", "A", "", "pong", false, 2),
	}, "A")

	require.Len(t, conversations, 1)
	// Only m2 is addressed to A and unread.
	assert.Equal(t, 1, conversations[0].UnreadCount)
	assert.Equal(t, "m2", conversations[0].LastMessage.ID)
}

func TestDeriveConversationsSplitsProductScopes(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "p1", "about p1", false, 1),
		msg("m2", "A", "B", "p2", "about p2", false, 2),
	}, "A")

	require.Len(t, conversations, 2)
	assert.NotEqual(t, conversations[0].Key, conversations[1].Key)
}

func TestDeriveConversationsExcludesUninvolved(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "", "mine", false, 1),
		msg("m2", "C", "D", "", "not mine", false, 2),
	}, "A")

	require.Len(t, conversations, 1)
	assert.Equal(t, "B", conversations[0].CounterpartID)
}

func TestDeriveConversationsPartition(t *testing.T) {
	messages := []*entity.Message{
		msg("m1", "A", "B", "", "a", false, 1),
		msg("m2", "B", "A", "", "b", true, 2),
		msg("m3", "A", "C", "p1", "c", false, 3),
		msg("m4", "C", "A", "p1", "d", false, 4),
		msg("m5", "A", "C", "", "e", false, 5),
	}

	conversations := DeriveConversations(messages, "A")

	keys := make(map[string]bool)
	for _, conv := range conversations {
		assert.False(t, keys[conv.Key], "duplicate group %s", conv.Key)
		keys[conv.Key] = true
	}

	// Every involving message maps to exactly one derived group.
	for _, m := range messages {
		counterpart := m.ReceiverID
		if m.ReceiverID == "A" {
			counterpart = m.SenderID
		}
		assert.True(t, keys[ConversationKey("A", counterpart, m.ProductID)], "message %s has no group", m.ID)
	}
	assert.Len(t, conversations, 3)
}

func TestDeriveConversationsUnreadRecomputed(t *testing.T) {
	messages := []*entity.Message{
		msg("m1", "B", "A", "", "one", false, 1),
		msg("m2", "B", "A", "", "two", false, 2),
		msg("m3", "B", "A", "", "three", true, 3),
		msg("m4", "A", "B", "", "sent by A, unread by B", false, 4),
	}

	conversations := DeriveConversations(messages, "A")
	require.Len(t, conversations, 1)
	assert.Equal(t, 2, conversations[0].UnreadCount)

	// Flipping read state changes the next derivation; nothing is cached.
	messages[0].Read = true
	conversations = DeriveConversations(messages, "A")
	assert.Equal(t, 1, conversations[0].UnreadCount)
}

func TestDeriveConversationsOrderIndependent(t *testing.T) {
	messages := []*entity.Message{
		msg("m1", "A", "B", "", "a", false, 5),
		msg("m2", "B", "A", "", "b", false, 3),
		msg("m3", "A", "C", "p1", "c", false, 9),
		msg("m4", "D", "A", "", "d", true, 7),
		msg("m5", "C", "A", "p1", "e", false, 1),
	}

	expected := DeriveConversations(messages, "A")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]*entity.Message, len(messages))
		copy(shuffled, messages)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, expected, DeriveConversations(shuffled, "A"))
	}
}

func TestDeriveConversationsSortedByActivity(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "B", "", "old", false, 1),
		msg("m2", "A", "C", "", "new", false, 9),
		msg("m3", "A", "D", "", "middle", false, 5),
	}, "A")

	require.Len(t, conversations, 3)
	assert.Equal(t, "C", conversations[0].CounterpartID)
	assert.Equal(t, "D", conversations[1].CounterpartID)
	assert.Equal(t, "B", conversations[2].CounterpartID)
}

func TestDeriveConversationsTimestampTieBrokenByKey(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m1", "A", "C", "", "x", false, 5),
		msg("m2", "A", "B", "", "y", false, 5),
	}, "A")

	require.Len(t, conversations, 2)
	assert.Equal(t, "B", conversations[0].CounterpartID)
	assert.Equal(t, "C", conversations[1].CounterpartID)
}

func TestLastMessageTieBrokenByID(t *testing.T) {
	conversations := DeriveConversations([]*entity.Message{
		msg("m2", "A", "B", "", "later id", false, 5),
		msg("m1", "B", "A", "", "earlier id", false, 5),
	}, "A")

	require.Len(t, conversations, 1)
	assert.Equal(t, "m2", conversations[0].LastMessage.ID)
}

func TestDeriveConversationsEmptyInput(t *testing.T) {
	assert.Empty(t, DeriveConversations(nil, "A"))
	assert.Empty(t, DeriveConversations([]*entity.Message{}, "A"))
}
