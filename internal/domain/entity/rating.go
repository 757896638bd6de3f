package entity

import (
	"time"
)

// Rating is a buyer's 1-5 score of a seller for one product. One row per
// (buyer, seller, product); re-rating updates the existing row.
type Rating struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"product_id" firestore:"productId"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	Rating    int       `json:"rating" firestore:"rating"`
	Comment   string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`

	Buyer *User `json:"buyer,omitempty" firestore:"-"`
}

// RatingSummary is always recomputed from rating rows, never stored.
type RatingSummary struct {
	SellerID string  `json:"seller_id"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
}
