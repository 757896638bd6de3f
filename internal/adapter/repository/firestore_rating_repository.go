package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{client: client}
}

// Deterministic doc ID keeps one rating per (buyer, seller, product) without
// needing a uniqueness query.
func ratingDocID(buyerID, sellerID, productID string) string {
	return fmt.Sprintf("%s_%s_%s", buyerID, sellerID, productID)
}

func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	rating.ID = ratingDocID(rating.BuyerID, rating.SellerID, rating.ProductID)

	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	_, err := r.client.Collection("ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to create rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	rating.UpdatedAt = time.Now()

	_, err := r.client.Collection("ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to update rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) GetByBuyerSellerProduct(ctx context.Context, buyerID, sellerID, productID string) (*entity.Rating, error) {
	doc, err := r.client.Collection("ratings").Doc(ratingDocID(buyerID, sellerID, productID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Rating", err)
		}
		return nil, errors.Internal("Failed to get rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Rating, int64, error) {
	query := r.client.Collection("ratings").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list ratings", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var ratings []*entity.Rating

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate ratings", err)
		}

		var rating entity.Rating
		if err := doc.DataTo(&rating); err != nil {
			logger.Warn("Skipping malformed rating row %s: %v", doc.Ref.ID, err)
			continue
		}
		ratings = append(ratings, &rating)
	}

	return ratings, total, nil
}
