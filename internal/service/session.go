package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// SessionService manages browser sessions. The cookie the browser holds is
// an HS256-signed token carrying only the session ID; the session state
// itself (login, flash notices) lives in Redis and expires with its TTL.
type SessionService struct {
	sessionRepo repository.SessionRepository
	secret      []byte
	ttl         time.Duration
}

// NewSessionService creates a SessionService. secret signs the session
// cookie and must come from configuration.
func NewSessionService(sessionRepo repository.SessionRepository, secret string, ttl time.Duration) (*SessionService, error) {
	if sessionRepo == nil {
		panic("SessionRepository cannot be nil for SessionService")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		secret:      []byte(secret),
		ttl:         ttl,
	}, nil
}

// TTL returns the session lifetime, used for the cookie max-age.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Start creates a fresh anonymous session and returns it with the signed
// cookie token.
func (s *SessionService) Start(ctx context.Context) (*domain.Session, string, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Save(ctx, session, s.ttl); err != nil {
		logrus.WithError(err).Error("Session.Start: failed to save session")
		return nil, "", ErrInternalServer
	}
	token, err := s.signToken(session.ID)
	if err != nil {
		logrus.WithError(err).Error("Session.Start: failed to sign token")
		return nil, "", ErrInternalServer
	}
	return session, token, nil
}

// Resolve validates a cookie token and loads the session it names.
// Tampered or expired tokens and unknown session IDs all come back as
// ErrSessionNotFound; the caller just starts a new session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessionRepo.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		logrus.WithError(err).Error("Session.Resolve: repository error")
		return nil, ErrInternalServer
	}
	return session, nil
}

// BindUser marks the session as authenticated for the given user.
func (s *SessionService) BindUser(ctx context.Context, session *domain.Session, userID uint) error {
	session.UserID = userID
	if err := s.sessionRepo.Save(ctx, session, s.ttl); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Session.BindUser: failed to save session")
		return ErrInternalServer
	}
	return nil
}

// ClearUser returns the session to the anonymous state (logout).
func (s *SessionService) ClearUser(ctx context.Context, session *domain.Session) error {
	session.UserID = 0
	if err := s.sessionRepo.Save(ctx, session, s.ttl); err != nil {
		logrus.WithError(err).Error("Session.ClearUser: failed to save session")
		return ErrInternalServer
	}
	return nil
}

// AddFlash queues a one-shot notice for the next rendered page. Flash
// failures are logged but never fail the request that queued them.
func (s *SessionService) AddFlash(ctx context.Context, session *domain.Session, message string) {
	if session == nil {
		return
	}
	if err := s.sessionRepo.PushFlash(ctx, session.ID, message); err != nil {
		logrus.WithError(err).Warn("Session.AddFlash: failed to push flash")
	}
}

// TakeFlashes returns all queued notices and discards them.
func (s *SessionService) TakeFlashes(ctx context.Context, session *domain.Session) []string {
	if session == nil {
		return nil
	}
	msgs, err := s.sessionRepo.PopFlashes(ctx, session.ID)
	if err != nil {
		logrus.WithError(err).Warn("Session.TakeFlashes: failed to pop flashes")
		return nil
	}
	return msgs
}

func (s *SessionService) signToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(s.ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *SessionService) parseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("session token validation failed: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token or claims type")
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("session token missing sid claim")
	}
	return sessionID, nil
}
