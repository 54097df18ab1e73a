// Package redisstate implements the SessionRepository interface on Redis.
// Sessions and their flash queues are TTL-bound; expiry never needs a
// sweeper.
package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// RedisSessionRepository stores sessions as JSON strings and flash notices
// as per-session lists.
type RedisSessionRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionRepository creates a RedisSessionRepository. keyPrefix
// namespaces all keys ("wl:" by default).
func NewRedisSessionRepository(client *redis.Client, keyPrefix string) *RedisSessionRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisSessionRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "wl:"
	}
	return &RedisSessionRepository{client: client, keyPrefix: keyPrefix}
}

func (r *RedisSessionRepository) sessionKey(id string) string {
	return fmt.Sprintf("%ssession:%s", r.keyPrefix, id)
}

func (r *RedisSessionRepository) flashKey(id string) string {
	return fmt.Sprintf("%ssession:%s:flash", r.keyPrefix, id)
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	key := r.sessionKey(id)
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: get session %s: %w", key, err)
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("redis: unmarshal session %s: %w", key, err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, r.sessionKey(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.sessionKey(id))
	pipe.Del(ctx, r.flashKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: delete session %s: %w", id, err)
	}
	return nil
}

// PushFlash appends a notice to the session's queue. The queue carries a
// short TTL of its own so orphaned notices cannot outlive the session.
func (r *RedisSessionRepository) PushFlash(ctx context.Context, sessionID, message string) error {
	key := r.flashKey(sessionID)
	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, 30*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: push flash for session %s: %w", sessionID, err)
	}
	return nil
}

// PopFlashes reads and clears the queue in one pipeline, giving each notice
// exactly-once display semantics.
func (r *RedisSessionRepository) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := r.flashKey(sessionID)
	pipe := r.client.Pipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis: pop flashes for session %s: %w", sessionID, err)
	}
	return rangeCmd.Val(), nil
}
