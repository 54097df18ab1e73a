package service

import "errors"

// Business errors surfaced to the handlers. Handlers translate them into
// flash notices, redirects or error pages.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMovieNotFound        = errors.New("movie not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrInternalServer       = errors.New("internal server error")
)
