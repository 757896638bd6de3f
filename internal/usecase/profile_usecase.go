package usecase

import (
	"context"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
)

type ProfileUseCase struct {
	userRepo repository.UserRepository
}

func NewProfileUseCase(userRepo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

type UpdateProfileInput struct {
	FullName  string `json:"full_name" validate:"omitempty,max=100"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// GetProfile returns a user's public profile.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// EnsureProfile returns the caller's profile, creating a minimal row on first
// login so later lookups by other users never miss.
func (uc *ProfileUseCase) EnsureProfile(ctx context.Context, userID, email string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	user = &entity.User{ID: userID, Email: email}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies partial changes to the caller's own profile.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
