package usecase

import (
	"context"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistUseCase(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (uc *WishlistUseCase) AddToWishlist(ctx context.Context, userID, productID string) (*entity.WishlistItem, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == userID {
		return nil, errors.Validation("Cannot wishlist your own listing")
	}
	if product.Status != "active" {
		return nil, errors.BadRequest("Product is no longer available", nil)
	}

	return uc.wishlistRepo.AddToWishlist(ctx, userID, productID)
}

func (uc *WishlistUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return uc.wishlistRepo.RemoveFromWishlist(ctx, userID, productID)
}

func (uc *WishlistUseCase) IsInWishlist(ctx context.Context, userID, productID string) (bool, error) {
	return uc.wishlistRepo.IsInWishlist(ctx, userID, productID)
}

func (uc *WishlistUseCase) GetWishlist(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error) {
	return uc.wishlistRepo.GetUserWishlist(ctx, userID, limit, offset)
}

func (uc *WishlistUseCase) GetWishlistCount(ctx context.Context, userID string) (int64, error) {
	return uc.wishlistRepo.GetWishlistCount(ctx, userID)
}
