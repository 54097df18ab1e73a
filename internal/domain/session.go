package domain

import "time"

// Session is the server-side state bound to one browser, stored in Redis
// rather than the SQL database. UserID zero means the session is anonymous.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether a user has logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}
