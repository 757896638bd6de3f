package repository

import (
	"context"

	"peermarket/internal/domain/entity"
)

type WishlistRepository interface {
	AddToWishlist(ctx context.Context, userID, productID string) (*entity.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
	IsInWishlist(ctx context.Context, userID, productID string) (bool, error)
	GetUserWishlist(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error)
	GetWishlistCount(ctx context.Context, userID string) (int64, error)
}
