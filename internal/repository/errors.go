package repository

import "errors"

// Common repository errors.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Resource-specific aliases, so callers can express intent while the
// implementations only need to map onto the common sentinels.
var (
	ErrUserNotFound    = ErrNotFound
	ErrMovieNotFound   = ErrNotFound
	ErrSessionNotFound = ErrNotFound
)
