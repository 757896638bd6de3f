package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peermarket/internal/usecase"
	"peermarket/pkg/response"
	"peermarket/pkg/utils"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type addToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.wishlistUseCase.AddToWishlist(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.wishlistUseCase.RemoveFromWishlist(c.Request().Context(), userID, c.Param("productId")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) CheckWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)

	inWishlist, err := h.wishlistUseCase.IsInWishlist(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"in_wishlist": inWishlist})
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	items, total, err := h.wishlistUseCase.GetWishlist(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, params.Page, params.PageSize)
}

func (h *WishlistHandler) GetWishlistCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.wishlistUseCase.GetWishlistCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"count": count})
}
