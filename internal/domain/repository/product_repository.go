package repository

import (
	"context"

	"peermarket/internal/domain/entity"
)

// ProductFilter mirrors the browse page controls; zero values mean "no filter".
type ProductFilter struct {
	Search    string
	Category  string
	Condition string
	MinPrice  float64
	MaxPrice  float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
