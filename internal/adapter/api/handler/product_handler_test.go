package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/internal/usecase"
)

// stubProductRepo records the seller-listing query it receives.
type stubProductRepo struct {
	gotSellerID string
	gotStatus   string
}

func (r *stubProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }

func (r *stubProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return &entity.Product{ID: id, Status: "active"}, nil
}

func (r *stubProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	r.gotSellerID = sellerID
	r.gotStatus = status
	return []*entity.Product{{ID: "p1", SellerID: sellerID, Title: "Lamp", Status: "active"}}, 1, nil
}

func (r *stubProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (r *stubProductRepo) SoftDelete(ctx context.Context, id string) error           { return nil }
func (r *stubProductRepo) IncrementViews(ctx context.Context, id string) error       { return nil }

type stubLimiter struct{}

func (stubLimiter) Allow(userID, action string) (bool, time.Duration) { return true, 0 }

func TestListSellerProductsPublicShowsActiveOnly(t *testing.T) {
	repo := &stubProductRepo{}
	h := NewProductHandler(usecase.NewProductUseCase(repo, stubLimiter{}))

	e := echo.New()
	// The query must not widen the public view to sold or deleted listings.
	req := httptest.NewRequest(http.MethodGet, "/v1/sellers/seller-1/products?status=sold", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/sellers/:id/products")
	c.SetParamNames("id")
	c.SetParamValues("seller-1")

	require.NoError(t, h.ListSellerProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "seller-1", repo.gotSellerID)
	assert.Equal(t, "active", repo.gotStatus)
	assert.Contains(t, rec.Body.String(), "Lamp")
}
