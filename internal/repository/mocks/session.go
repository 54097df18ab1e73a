package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"movie-watchlist/internal/domain"
)

// SessionRepository is a mock of repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) PushFlash(ctx context.Context, sessionID, message string) error {
	args := m.Called(ctx, sessionID, message)
	return args.Error(0)
}

func (m *SessionRepository) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if msgs, ok := args.Get(0).([]string); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}
