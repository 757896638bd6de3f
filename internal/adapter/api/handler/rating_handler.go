package handler

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/usecase"
	"peermarket/pkg/response"
	"peermarket/pkg/utils"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

type rateSellerRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

// RateSeller records or overwrites the caller's score for a product's seller.
func (h *RatingHandler) RateSeller(c echo.Context) error {
	var req rateSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	rating, err := h.ratingUseCase.RateSeller(c.Request().Context(), userID, usecase.RateSellerInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}

func (h *RatingHandler) GetSellerSummary(c echo.Context) error {
	summary, err := h.ratingUseCase.GetSellerSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}

func (h *RatingHandler) ListSellerRatings(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	ratings, total, err := h.ratingUseCase.ListSellerRatings(c.Request().Context(), c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, ratings, total, params.Page, params.PageSize)
}
