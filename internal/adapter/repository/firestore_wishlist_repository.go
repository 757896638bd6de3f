package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func wishlistDocID(userID, productID string) string {
	return fmt.Sprintf("%s_%s", userID, productID)
}

func (r *firestoreWishlistRepository) AddToWishlist(ctx context.Context, userID, productID string) (*entity.WishlistItem, error) {
	exists, err := r.IsInWishlist(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.BadRequest("Product already in wishlist", nil)
	}

	item := entity.WishlistItem{
		ID:        wishlistDocID(userID, productID),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}

	_, err = r.client.Collection("wishlists").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return nil, errors.Internal("Failed to add to wishlist", err)
	}

	return &item, nil
}

func (r *firestoreWishlistRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	exists, err := r.IsInWishlist(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Wishlist item", nil)
	}

	_, err = r.client.Collection("wishlists").Doc(wishlistDocID(userID, productID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove from wishlist", err)
	}

	return nil
}

func (r *firestoreWishlistRepository) IsInWishlist(ctx context.Context, userID, productID string) (bool, error) {
	doc, err := r.client.Collection("wishlists").Doc(wishlistDocID(userID, productID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) GetUserWishlist(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithProduct, int64, error) {
	query := r.client.Collection("wishlists").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to get wishlist", err)
	}

	var items []entity.WishlistItem
	productIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			logger.Warn("Skipping malformed wishlist row %s: %v", doc.Ref.ID, err)
			continue
		}
		items = append(items, item)
		productIDs = append(productIDs, item.ProductID)
	}

	if len(productIDs) == 0 {
		return []entity.WishlistItemWithProduct{}, 0, nil
	}

	productMap := r.batchGetProducts(ctx, productIDs)

	// Inactive or vanished products are dropped rather than shown as dead
	// cards; the count reflects what the user will actually see.
	var result []entity.WishlistItemWithProduct
	var activeCount int64
	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok || product.Status != "active" {
			continue
		}
		activeCount++

		if int(activeCount) > offset && (limit <= 0 || len(result) < limit) {
			result = append(result, entity.WishlistItemWithProduct{
				ID:        item.ID,
				UserID:    item.UserID,
				ProductID: item.ProductID,
				Product:   product,
				CreatedAt: item.CreatedAt,
			})
		}
	}

	return result, activeCount, nil
}

func (r *firestoreWishlistRepository) GetWishlistCount(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("wishlists").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count wishlist", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	productIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		productIDs = append(productIDs, item.ProductID)
	}

	var activeCount int64
	for _, product := range r.batchGetProducts(ctx, productIDs) {
		if product.Status == "active" {
			activeCount++
		}
	}

	return activeCount, nil
}

// batchGetProducts fetches product docs in Firestore's 30-ref batches; a
// failed batch is skipped so one bad read never empties the whole wishlist.
func (r *firestoreWishlistRepository) batchGetProducts(ctx context.Context, productIDs []string) map[string]*entity.Product {
	productMap := make(map[string]*entity.Product)

	for i := 0; i < len(productIDs); i += 30 {
		end := i + 30
		if end > len(productIDs) {
			end = len(productIDs)
		}

		batchIDs := productIDs[i:end]
		docRefs := make([]*firestore.DocumentRef, len(batchIDs))
		for j, id := range batchIDs {
			docRefs[j] = r.client.Collection("products").Doc(id)
		}

		productDocs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			logger.Warn("Batch product fetch failed: %v", err)
			continue
		}

		for _, doc := range productDocs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				continue
			}
			productMap[doc.Ref.ID] = &product
		}
	}

	return productMap
}
