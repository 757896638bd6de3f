package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/internal/usecase"
	"peermarket/pkg/response"
	"peermarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type createProductRequest struct {
	Title       string                  `json:"title" validate:"required,min=3,max=100"`
	Description string                  `json:"description" validate:"required,max=2000"`
	Price       float64                 `json:"price" validate:"required,gt=0"`
	Category    string                  `json:"category" validate:"required"`
	Condition   string                  `json:"condition" validate:"required"`
	Images      []string                `json:"images"`
	Location    *entity.ProductLocation `json:"location"`
}

type updateProductRequest struct {
	Title       string                  `json:"title" validate:"omitempty,min=3,max=100"`
	Description string                  `json:"description" validate:"omitempty,max=2000"`
	Price       float64                 `json:"price" validate:"omitempty,gt=0"`
	Category    string                  `json:"category"`
	Condition   string                  `json:"condition"`
	Images      []string                `json:"images"`
	Location    *entity.ProductLocation `json:"location"`
	Status      string                  `json:"status" validate:"omitempty,oneof=active sold"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Images:      req.Images,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

// ListProducts is the public browse endpoint: keyword search plus category,
// condition, and price range filters, newest first.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	filter := repository.ProductFilter{
		Search:    c.QueryParam("search"),
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
	}

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

// ListSellerProducts is the public seller page: only active listings show,
// whatever status the query asks for.
func (h *ProductHandler) ListSellerProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListSellerProducts(
		c.Request().Context(),
		c.Param("id"),
		"active",
		params.PageSize,
		params.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	products, total, err := h.productUseCase.ListSellerProducts(
		c.Request().Context(),
		userID,
		c.QueryParam("status"),
		params.PageSize,
		params.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), userID, c.Param("id"), usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Images:      req.Images,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
