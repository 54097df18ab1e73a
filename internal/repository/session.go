package repository

import (
	"context"
	"time"

	"movie-watchlist/internal/domain"
)

// SessionRepository defines storage of browser sessions and their one-shot
// flash notices. Both are TTL-bound; expiry is delegated to the store.
type SessionRepository interface {
	// Find returns ErrSessionNotFound when the session id is unknown or
	// has expired.
	Find(ctx context.Context, id string) (*domain.Session, error)

	// Save writes the session and (re)arms its TTL.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// PushFlash appends a one-shot notice to the session's flash queue.
	PushFlash(ctx context.Context, sessionID, message string) error

	// PopFlashes returns all queued notices and clears the queue in one
	// step, so each notice is shown exactly once.
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}
