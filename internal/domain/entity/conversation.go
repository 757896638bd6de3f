package entity

// Conversation is a derived view over messages between exactly two users,
// scoped by product. It is never persisted; every field is recomputable from
// the underlying message rows.
type Conversation struct {
	Key           string   `json:"key"`
	CounterpartID string   `json:"counterpart_id"`
	ProductID     string   `json:"product_id,omitempty"`
	Counterpart   *User    `json:"counterpart,omitempty"`
	Product       *Product `json:"product,omitempty"`
	LastMessage   *Message `json:"last_message"`
	UnreadCount   int      `json:"unread_count"`
}
