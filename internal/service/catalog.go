package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// CatalogService implements the movie list operations. All field
// validation happens here, before anything touches the repository.
type CatalogService struct {
	movieRepo repository.MovieRepository
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(movieRepo repository.MovieRepository) *CatalogService {
	if movieRepo == nil {
		panic("MovieRepository cannot be nil for CatalogService")
	}
	return &CatalogService{movieRepo: movieRepo}
}

// validateMovieInput enforces the shared create/update rules: both fields
// non-empty, title at most 60 characters, year at most 4. Limits count
// characters, not bytes, so multibyte titles fill the full 60.
func validateMovieInput(title, year string) error {
	if title == "" || year == "" ||
		utf8.RuneCountInString(title) > domain.TitleMaxLen ||
		utf8.RuneCountInString(year) > domain.YearMaxLen {
		return ErrInvalidInput
	}
	return nil
}

// List returns the whole catalog in storage order.
func (s *CatalogService) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.movieRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Catalog.List: repository error")
		return nil, ErrInternalServer
	}
	return movies, nil
}

// Get returns one movie, or ErrMovieNotFound.
func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Movie, error) {
	movie, err := s.movieRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		logrus.WithError(err).WithField("movie_id", id).Error("Catalog.Get: repository error")
		return nil, ErrInternalServer
	}
	return movie, nil
}

// Create validates and persists a new movie.
func (s *CatalogService) Create(ctx context.Context, title, year string) (*domain.Movie, error) {
	if err := validateMovieInput(title, year); err != nil {
		return nil, err
	}
	movie := &domain.Movie{Title: title, Year: year}
	if err := s.movieRepo.Save(ctx, movie); err != nil {
		logrus.WithError(err).Error("Catalog.Create: repository error")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"movie_id": movie.ID, "title": title}).Info("Movie created")
	return movie, nil
}

// Update overwrites an existing movie's fields. The existence check runs
// first, so an unknown id is reported as not-found even when the fields
// are also invalid.
func (s *CatalogService) Update(ctx context.Context, id uint, title, year string) error {
	movie, err := s.movieRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		logrus.WithError(err).WithField("movie_id", id).Error("Catalog.Update: repository error")
		return ErrInternalServer
	}
	if err := validateMovieInput(title, year); err != nil {
		return err
	}
	movie.Title = title
	movie.Year = year
	if err := s.movieRepo.Save(ctx, movie); err != nil {
		logrus.WithError(err).WithField("movie_id", id).Error("Catalog.Update: repository error")
		return ErrInternalServer
	}
	logrus.WithField("movie_id", id).Info("Movie updated")
	return nil
}

// Delete removes a movie permanently. There is no soft delete or undo.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	err := s.movieRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		logrus.WithError(err).WithField("movie_id", id).Error("Catalog.Delete: repository error")
		return ErrInternalServer
	}
	logrus.WithField("movie_id", id).Info("Movie deleted")
	return nil
}
