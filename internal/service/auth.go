// Package service holds the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// AuthService handles credential checks and account maintenance.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	return &AuthService{userRepo: userRepo}
}

// Login verifies a username/password pair and returns the matching user.
// Unknown usernames and wrong passwords both yield ErrAuthenticationFailed
// so the response never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Error("Login attempt failed: error finding user")
		}
		return nil, ErrAuthenticationFailed
	}

	if !user.ValidatePassword(password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return nil, ErrAuthenticationFailed
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return user, nil
}

// UpsertAdmin creates the admin account when none exists, or updates the
// existing account's username and password. Used by the admin command and
// by first-run seeding. Returns true when a new account was created.
func (s *AuthService) UpsertAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" ||
		utf8.RuneCountInString(username) > domain.UsernameMaxLen {
		return false, ErrInvalidInput
	}

	user, err := s.userRepo.First(ctx)
	created := false
	switch {
	case err == nil:
		user.Username = username
	case errors.Is(err, repository.ErrUserNotFound):
		user = &domain.User{Name: "Admin", Username: username}
		created = true
	default:
		logrus.WithError(err).Error("UpsertAdmin: error finding user")
		return false, ErrInternalServer
	}

	if err := user.SetPassword(password); err != nil {
		logrus.WithError(err).Error("UpsertAdmin: failed to hash password")
		return false, ErrInternalServer
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		logrus.WithError(err).Error("UpsertAdmin: failed to save user")
		return false, ErrInternalServer
	}
	return created, nil
}

// UpdateDisplayName changes the display name shown on every page.
func (s *AuthService) UpdateDisplayName(ctx context.Context, userID uint, name string) error {
	if name == "" || utf8.RuneCountInString(name) > domain.NameMaxLen {
		return ErrInvalidInput
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("UpdateDisplayName: error finding user")
		return ErrInternalServer
	}

	user.Name = name
	if err := s.userRepo.Save(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("UpdateDisplayName: failed to save user")
		return ErrInternalServer
	}
	return nil
}

// Owner returns the account whose display name heads every page. The
// watchlist has a single account, so the first row is the owner. A nil
// user with nil error means no account has been created yet.
func (s *AuthService) Owner(ctx context.Context) (*domain.User, error) {
	user, err := s.userRepo.First(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		logrus.WithError(err).Error("Owner: error finding first user")
		return nil, ErrInternalServer
	}
	return user, nil
}
