package handler

import (
	"github.com/labstack/echo/v4"

	"peermarket/internal/usecase"
	"peermarket/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type updateProfileRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,max=100"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// GetMe returns the caller's own profile, creating it on first login.
func (h *ProfileHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	user, err := h.profileUseCase.EnsureProfile(c.Request().Context(), userID, email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.profileUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.profileUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FullName:  req.FullName,
		Bio:       req.Bio,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
