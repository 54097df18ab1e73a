// Package repository declares the storage interfaces the services depend
// on. Implementations live under internal/infra.
package repository

import (
	"context"

	"movie-watchlist/internal/domain"
)

// UserRepository defines storage and retrieval of user accounts.
type UserRepository interface {
	// FindByUsername looks a user up by login name. Returns
	// ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID looks a user up by primary key. Returns ErrUserNotFound
	// when no such user exists.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// First returns the first user in primary-key order, or
	// ErrUserNotFound when the table is empty. The watchlist has a single
	// owning account, so "first user" doubles as "the site owner".
	First(ctx context.Context) (*domain.User, error)

	// Save inserts the user when its ID is zero and updates it otherwise.
	// Returns ErrDuplicateEntry when the username is already taken.
	Save(ctx context.Context, user *domain.User) error
}
