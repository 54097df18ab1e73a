package setup_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/infra/setup"
	"movie-watchlist/internal/repository"
	"movie-watchlist/internal/repository/mocks"
)

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)

	require.NoError(t, setup.SeedAdmin(context.Background(), mockUserRepo, "", ""))
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSeedAdmin_NeverOverwritesExistingUser(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Username: "zhangqi"}
	mockUserRepo.On("First", ctx).Return(existing, nil).Once()

	require.NoError(t, setup.SeedAdmin(ctx, mockUserRepo, "admin", "s3cret"))
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSeedAdmin_CreatesFirstUser(t *testing.T) {
	ctx := context.Background()

	// The 20-character username limit counts characters, so a multibyte
	// username past 20 bytes still seeds.
	for _, username := range []string{"admin", strings.Repeat("琪", 20)} {
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("First", ctx).Return(nil, repository.ErrUserNotFound).Once()
		mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Username == username && user.PasswordHash != ""
		})).Return(nil).Once()

		require.NoError(t, setup.SeedAdmin(ctx, mockUserRepo, username, "s3cret"))
		mockUserRepo.AssertExpectations(t)
	}
}

func TestSeedAdmin_RejectsOversizedUsername(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)

	err := setup.SeedAdmin(context.Background(), mockUserRepo, strings.Repeat("x", 21), "s3cret")
	assert.Error(t, err)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
