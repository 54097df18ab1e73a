package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/service"
)

// RequireLogin gates a route behind an authenticated session. Anonymous
// requests are bounced to the login page with a one-shot notice, matching
// the flash-and-redirect style of every other page transition.
func RequireLogin(sessions *service.SessionService) gin.HandlerFunc {
	if sessions == nil {
		panic("SessionService cannot be nil for RequireLogin middleware")
	}

	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			logrus.Error("RequireLogin: no session in context; is the Session middleware installed?")
			c.String(http.StatusInternalServerError, "Internal Server Error")
			c.Abort()
			return
		}
		if !sess.Authenticated() {
			sessions.AddFlash(c.Request.Context(), sess, "Please login first.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
