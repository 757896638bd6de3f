package usecase

import (
	"context"
	"time"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
	"peermarket/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	rateLimiter MessageRateLimiter
}

func NewProductUseCase(productRepo repository.ProductRepository, rateLimiter MessageRateLimiter) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		rateLimiter: rateLimiter,
	}
}

type CreateProductInput struct {
	Title       string                  `json:"title" validate:"required,min=3,max=100"`
	Description string                  `json:"description" validate:"required,max=2000"`
	Price       float64                 `json:"price" validate:"required,gt=0"`
	Category    string                  `json:"category" validate:"required"`
	Condition   string                  `json:"condition" validate:"required"`
	Images      []string                `json:"images"`
	Location    *entity.ProductLocation `json:"location"`
}

type UpdateProductInput struct {
	Title       string                  `json:"title" validate:"omitempty,min=3,max=100"`
	Description string                  `json:"description" validate:"omitempty,max=2000"`
	Price       float64                 `json:"price" validate:"omitempty,gt=0"`
	Category    string                  `json:"category"`
	Condition   string                  `json:"condition"`
	Images      []string                `json:"images"`
	Location    *entity.ProductLocation `json:"location"`
	Status      string                  `json:"status" validate:"omitempty,oneof=active sold"`
}

func validCategory(category string) bool {
	for _, c := range entity.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func validCondition(condition string) bool {
	for _, c := range entity.ProductConditions {
		if c == condition {
			return true
		}
	}
	return false
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	if !validCategory(input.Category) {
		return nil, errors.Validation("Unknown product category")
	}
	if !validCondition(input.Condition) {
		return nil, errors.Validation("Unknown product condition")
	}

	if allowed, wait := uc.rateLimiter.Allow(sellerID, "create_listing"); !allowed {
		return nil, errors.TooManyRequests(
			"Too many new listings, try again in " + wait.Round(time.Second).String())
	}

	product := &entity.Product{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      input.Images,
		Location:    input.Location,
		Status:      "active",
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct returns one listing and bumps its view counter. The counter is
// advisory, so a failed increment logs and moves on.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.Status == "deleted" || product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}

	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to increment views for product %s: %v", id, err)
	}

	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *ProductUseCase) ListSellerProducts(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.ListBySellerID(ctx, sellerID, status, limit, offset)
}

// UpdateProduct applies partial changes to the caller's own listing. Zero
// values in the input leave the corresponding field untouched.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, userID, productID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != userID {
		return nil, errors.Forbidden("Only the seller can modify this listing", nil)
	}
	if product.Status == "deleted" || product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}

	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		if !validCategory(input.Category) {
			return nil, errors.Validation("Unknown product category")
		}
		product.Category = input.Category
	}
	if input.Condition != "" {
		if !validCondition(input.Condition) {
			return nil, errors.Validation("Unknown product condition")
		}
		product.Condition = input.Condition
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Location != nil {
		product.Location = input.Location
	}
	if input.Status != "" {
		product.Status = input.Status
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SellerID != userID {
		return errors.Forbidden("Only the seller can delete this listing", nil)
	}
	if product.Status == "deleted" || product.DeletedAt != nil {
		return errors.NotFound("Product", nil)
	}

	return uc.productRepo.SoftDelete(ctx, productID)
}
