package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"movie-watchlist/internal/domain"
)

// MovieRepository is a mock of repository.MovieRepository.
type MovieRepository struct {
	mock.Mock
}

func (m *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	if movies, ok := args.Get(0).([]domain.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MovieRepository) FindByID(ctx context.Context, id uint) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*domain.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MovieRepository) Save(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MovieRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
