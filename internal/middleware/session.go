// Package middleware holds the gin middleware: session handling, the
// login gate and login rate limiting.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/domain"
	"movie-watchlist/internal/service"
)

// CookieName is the session cookie set on every browser.
const CookieName = "watchlist_session"

// sessionContextKey is where the resolved session lives in the gin context.
const sessionContextKey = "session"

// Session resolves the browser's session cookie, starting a fresh
// anonymous session when the cookie is missing, tampered with or expired.
// Every downstream handler can rely on SessionFromContext returning a
// session.
func Session(sessions *service.SessionService) gin.HandlerFunc {
	if sessions == nil {
		panic("SessionService cannot be nil for Session middleware")
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *domain.Session
		if token, err := c.Cookie(CookieName); err == nil {
			if resolved, err := sessions.Resolve(ctx, token); err == nil {
				sess = resolved
			}
		}

		if sess == nil {
			fresh, token, err := sessions.Start(ctx)
			if err != nil {
				logrus.WithError(err).Error("Session middleware: failed to start session")
				c.String(http.StatusInternalServerError, "Internal Server Error")
				c.Abort()
				return
			}
			maxAge := int(sessions.TTL().Seconds())
			c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
			sess = fresh
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session attached by the Session
// middleware, or nil when the middleware did not run.
func SessionFromContext(c *gin.Context) *domain.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, ok := value.(*domain.Session)
	if !ok {
		return nil
	}
	return sess
}
