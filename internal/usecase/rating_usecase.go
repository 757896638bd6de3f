package usecase

import (
	"context"
	"math"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

type RatingUseCase struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type RateSellerInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

// RateSeller records the buyer's score for the seller of a product. Rating
// the same product again overwrites the previous score instead of stacking.
func (uc *RatingUseCase) RateSeller(ctx context.Context, buyerID string, input RateSellerInput) (*entity.Rating, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, errors.Validation("Cannot rate your own listing")
	}

	existing, err := uc.ratingRepo.GetByBuyerSellerProduct(ctx, buyerID, product.SellerID, input.ProductID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if existing != nil {
		existing.Rating = input.Rating
		existing.Comment = input.Comment
		if err := uc.ratingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	rating := &entity.Rating{
		ProductID: input.ProductID,
		SellerID:  product.SellerID,
		BuyerID:   buyerID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := uc.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

// GetSellerSummary recomputes the seller's average from the rating rows on
// every call. The average is rounded to one decimal for display.
func (uc *RatingUseCase) GetSellerSummary(ctx context.Context, sellerID string) (*entity.RatingSummary, error) {
	ratings, total, err := uc.ratingRepo.ListBySellerID(ctx, sellerID, 0, 0)
	if err != nil {
		return nil, err
	}

	summary := &entity.RatingSummary{SellerID: sellerID, Count: total}
	if len(ratings) == 0 {
		return summary, nil
	}

	var sum int
	for _, rating := range ratings {
		sum += rating.Rating
	}
	summary.Average = math.Round(float64(sum)/float64(len(ratings))*10) / 10

	return summary, nil
}

// ListSellerRatings returns a seller's reviews newest first with reviewer
// profiles attached. A missing profile degrades to a placeholder.
func (uc *RatingUseCase) ListSellerRatings(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Rating, int64, error) {
	ratings, total, err := uc.ratingRepo.ListBySellerID(ctx, sellerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	buyerCache := make(map[string]*entity.User)
	for _, rating := range ratings {
		buyer, ok := buyerCache[rating.BuyerID]
		if !ok {
			buyer, err = uc.userRepo.GetByID(ctx, rating.BuyerID)
			if err != nil {
				logger.Warn("Failed to load reviewer profile %s: %v", rating.BuyerID, err)
				buyer = &entity.User{ID: rating.BuyerID, FullName: "Unknown User"}
			}
			buyerCache[rating.BuyerID] = buyer
		}
		rating.Buyer = buyer
	}

	return ratings, total, nil
}
