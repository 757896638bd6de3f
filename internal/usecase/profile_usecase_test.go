package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peermarket/internal/domain/entity"
)

func TestEnsureProfileCreatesOnFirstLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewProfileUseCase(userRepo)
	ctx := context.Background()

	user, err := uc.EnsureProfile(ctx, "u1", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "new@example.com", user.Email)

	// Second login returns the same row, not a fresh one.
	again, err := uc.EnsureProfile(ctx, "u1", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, userRepo.users, 1)
}

func TestUpdateProfilePartial(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{
		ID:       "u1",
		Email:    "u1@example.com",
		FullName: "Original Name",
		Bio:      "Original bio",
	})
	uc := NewProfileUseCase(userRepo)

	user, err := uc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
		Bio: "Collector of mid-century lamps",
	})
	require.NoError(t, err)
	assert.Equal(t, "Original Name", user.FullName)
	assert.Equal(t, "Collector of mid-century lamps", user.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	uc := NewProfileUseCase(newFakeUserRepo())

	_, err := uc.UpdateProfile(context.Background(), "ghost", UpdateProfileInput{Bio: "boo"})
	require.Error(t, err)
	assert.True(t, appErrorCode(err, "NOT_FOUND"))
}
