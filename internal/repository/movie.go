package repository

import (
	"context"

	"movie-watchlist/internal/domain"
)

// MovieRepository defines storage and retrieval of catalog entries.
type MovieRepository interface {
	// FindAll returns every movie in storage order (primary-key order; no
	// explicit sort is specified for the catalog).
	FindAll(ctx context.Context) ([]domain.Movie, error)

	// FindByID returns ErrMovieNotFound when the id is absent.
	FindByID(ctx context.Context, id uint) (*domain.Movie, error)

	// Save inserts the movie when its ID is zero and updates it otherwise.
	Save(ctx context.Context, movie *domain.Movie) error

	// Delete removes the movie permanently. Returns ErrMovieNotFound when
	// the id is absent.
	Delete(ctx context.Context, id uint) error
}
