package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
	"movie-watchlist/internal/repository/mocks"
	"movie-watchlist/internal/service"
)

func hashedUser(t *testing.T, id uint, username, password string) *domain.User {
	t.Helper()
	user := &domain.User{ID: id, Name: "Admin", Username: username}
	require.NoError(t, user.SetPassword(password))
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)
	ctx := context.Background()

	stored := hashedUser(t, 1, "zhangqi", "correct-horse")
	mockUserRepo.On("FindByUsername", ctx, "zhangqi").Return(stored, nil).Once()

	user, err := authService.Login(ctx, "zhangqi", "correct-horse")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(1), user.ID)
	mockUserRepo.AssertExpectations(t)
}

// A wrong password and an unknown username must be indistinguishable to
// the caller.
func TestAuthService_Login_GenericFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		stored := hashedUser(t, 1, "zhangqi", "correct-horse")
		mockUserRepo.On("FindByUsername", ctx, "zhangqi").Return(stored, nil).Once()

		_, err := authService.Login(ctx, "zhangqi", "wrong")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		mockUserRepo.On("FindByUsername", ctx, "nobody").Return(nil, repository.ErrUserNotFound).Once()

		_, err := authService.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)

	_, err := authService.Login(context.Background(), "", "")

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	mockUserRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthService_UpsertAdmin_CreatesWhenEmpty(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)
	ctx := context.Background()

	mockUserRepo.On("First", ctx).Return(nil, repository.ErrUserNotFound).Once()
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, "admin", user.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
		return true
	})).Return(nil).Once()

	created, err := authService.UpsertAdmin(ctx, "admin", "s3cret")

	require.NoError(t, err)
	assert.True(t, created)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_UpsertAdmin_UpdatesExisting(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)
	ctx := context.Background()

	existing := hashedUser(t, 1, "old-name", "old-pass")
	mockUserRepo.On("First", ctx).Return(existing, nil).Once()
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "new-name", user.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-pass")))
		return true
	})).Return(nil).Once()

	created, err := authService.UpsertAdmin(ctx, "new-name", "new-pass")

	require.NoError(t, err)
	assert.False(t, created)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_UpsertAdmin_RejectsInvalidInput(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pass"},
		{"empty password", "admin", ""},
		{"oversized username", "abcdefghijklmnopqrstu", "pass"}, // 21 chars
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authService.UpsertAdmin(ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_UpdateDisplayName(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		existing := hashedUser(t, 1, "zhangqi", "pass")
		mockUserRepo.On("FindByID", ctx, uint(1)).Return(existing, nil).Once()
		mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Name == "Zhang Qi"
		})).Return(nil).Once()

		require.NoError(t, authService.UpdateDisplayName(ctx, 1, "Zhang Qi"))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("rejects oversized name", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		err := authService.UpdateDisplayName(ctx, 1, "this name is way over twenty chars")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	// The 20-character limit counts characters, not bytes.
	t.Run("accepts 20 multibyte chars", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		name := strings.Repeat("琪", 20)
		existing := hashedUser(t, 1, "zhangqi", "pass")
		mockUserRepo.On("FindByID", ctx, uint(1)).Return(existing, nil).Once()
		mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Name == name
		})).Return(nil).Once()

		require.NoError(t, authService.UpdateDisplayName(ctx, 1, name))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		mockUserRepo.On("FindByID", ctx, uint(9)).Return(nil, repository.ErrUserNotFound).Once()

		err := authService.UpdateDisplayName(ctx, 9, "Name")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestAuthService_Owner(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first user", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		existing := hashedUser(t, 1, "zhangqi", "pass")
		mockUserRepo.On("First", ctx).Return(existing, nil).Once()

		owner, err := authService.Owner(ctx)
		require.NoError(t, err)
		assert.Equal(t, existing, owner)
	})

	t.Run("empty table is not an error", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		authService := service.NewAuthService(mockUserRepo)

		mockUserRepo.On("First", ctx).Return(nil, repository.ErrUserNotFound).Once()

		owner, err := authService.Owner(ctx)
		require.NoError(t, err)
		assert.Nil(t, owner)
	})
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "zhangqi").
		Return(nil, errors.New("connection refused")).Once()

	// Infrastructure failures must not leak anything either.
	_, err := authService.Login(ctx, "zhangqi", "pass")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}
