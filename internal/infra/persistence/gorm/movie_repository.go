package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// GormMovieRepository is the GORM implementation of MovieRepository.
type GormMovieRepository struct {
	db *gorm.DB
}

// NewGormMovieRepository creates a GormMovieRepository.
func NewGormMovieRepository(db *gorm.DB) *GormMovieRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMovieRepository")
	}
	return &GormMovieRepository{db: db}
}

// FindAll returns the catalog in primary-key order.
func (r *GormMovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := r.db.WithContext(ctx).Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("gorm: list movies: %w", err)
	}
	return movies, nil
}

func (r *GormMovieRepository) FindByID(ctx context.Context, id uint) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.db.WithContext(ctx).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMovieNotFound
		}
		return nil, fmt.Errorf("gorm: find movie by id %d: %w", id, err)
	}
	return &movie, nil
}

func (r *GormMovieRepository) Save(ctx context.Context, movie *domain.Movie) error {
	if err := r.db.WithContext(ctx).Save(movie).Error; err != nil {
		return fmt.Errorf("gorm: save movie (id: %d, title: %s): %w", movie.ID, movie.Title, err)
	}
	return nil
}

// Delete is a hard delete. RowsAffected distinguishes a missing row from a
// successful removal.
func (r *GormMovieRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrMovieNotFound
	}
	return nil
}
