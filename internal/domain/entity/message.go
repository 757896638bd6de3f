package entity

import "time"

// Message is a single directed communication between two users, optionally
// about a product. The read flag is the only mutable field; it flips to true
// when the receiver views the thread.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	// ProductID is stored as an empty string (not omitted) so the no-product
	// scope stays queryable with an equality filter.
	ProductID string    `json:"product_id,omitempty" firestore:"productId"`
	Content   string    `json:"content" firestore:"content"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`

	// Populated from the profiles/products collections, never stored on the row.
	Sender   *User    `json:"sender,omitempty" firestore:"-"`
	Receiver *User    `json:"receiver,omitempty" firestore:"-"`
	Product  *Product `json:"product,omitempty" firestore:"-"`
}
