package repository

import (
	"context"

	"peermarket/internal/domain/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	Update(ctx context.Context, rating *entity.Rating) error
	// GetByBuyerSellerProduct returns the buyer's existing rating for the
	// (seller, product) pair, or a NOT_FOUND error.
	GetByBuyerSellerProduct(ctx context.Context, buyerID, sellerID, productID string) (*entity.Rating, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Rating, int64, error)
}
