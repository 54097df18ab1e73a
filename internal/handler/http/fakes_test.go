package http_test

import (
	"context"
	"sync"
	"time"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/repository"
)

// In-memory repository fakes so the full router can be exercised without
// MySQL or Redis.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) First(_ context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.users) == 0 {
		return nil, repository.ErrUserNotFound
	}
	clone := *f.users[0]
	return &clone, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
		clone := *user
		f.users = append(f.users, &clone)
		return nil
	}
	for i, u := range f.users {
		if u.ID == user.ID {
			clone := *user
			f.users[i] = &clone
			return nil
		}
	}
	clone := *user
	f.users = append(f.users, &clone)
	return nil
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	nextID uint
	movies []*domain.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{nextID: 1}
}

func (f *fakeMovieRepo) FindAll(_ context.Context) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uint) (*domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movies {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (f *fakeMovieRepo) Save(_ context.Context, movie *domain.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if movie.ID == 0 {
		movie.ID = f.nextID
		f.nextID++
		clone := *movie
		f.movies = append(f.movies, &clone)
		return nil
	}
	for i, m := range f.movies {
		if m.ID == movie.ID {
			clone := *movie
			f.movies[i] = &clone
			return nil
		}
	}
	clone := *movie
	f.movies = append(f.movies, &clone)
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.movies {
		if m.ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return repository.ErrMovieNotFound
}

func (f *fakeMovieRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.movies)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	flashes  map[string][]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]domain.Session),
		flashes:  make(map[string][]string),
	}
}

func (f *fakeSessionRepo) Find(_ context.Context, id string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := sess
	return &clone, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *domain.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	delete(f.flashes, id)
	return nil
}

func (f *fakeSessionRepo) PushFlash(_ context.Context, sessionID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flashes[sessionID] = append(f.flashes[sessionID], message)
	return nil
}

func (f *fakeSessionRepo) PopFlashes(_ context.Context, sessionID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.flashes[sessionID]
	delete(f.flashes, sessionID)
	return msgs, nil
}
