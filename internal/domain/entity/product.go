package entity

import (
	"time"
)

var ProductCategories = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Sports & Outdoors",
	"Toys & Games",
	"Books & Media",
	"Automotive",
	"Other",
}

var ProductConditions = []string{"New", "Like New", "Good", "Fair", "Poor"}

type ProductLocation struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
	Label     string  `json:"label,omitempty" firestore:"label,omitempty"`
}

type Product struct {
	ID          string           `json:"id" firestore:"id"`
	SellerID    string           `json:"seller_id" firestore:"sellerId"`
	Title       string           `json:"title" firestore:"title"`
	Description string           `json:"description" firestore:"description"`
	Price       float64          `json:"price" firestore:"price"`
	Category    string           `json:"category" firestore:"category"`
	Condition   string           `json:"condition" firestore:"condition"`
	Images      []string         `json:"images" firestore:"images"`
	Location    *ProductLocation `json:"location,omitempty" firestore:"location,omitempty"`
	Status      string           `json:"status" firestore:"status"` // "active", "sold", "deleted"
	Views       int              `json:"views" firestore:"views"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
