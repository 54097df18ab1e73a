// Package http contains the gin handlers that render the watchlist pages.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-watchlist/internal/middleware"
	"movie-watchlist/internal/service"
)

// Renderer builds the per-request template context shared by every page:
// the owner's display name for the header, the login flag, and any queued
// flash notices. The current identity is injected here explicitly rather
// than read from any ambient global.
type Renderer struct {
	auth     *service.AuthService
	sessions *service.SessionService
}

// NewRenderer creates a Renderer.
func NewRenderer(auth *service.AuthService, sessions *service.SessionService) *Renderer {
	if auth == nil || sessions == nil {
		panic("AuthService and SessionService cannot be nil for Renderer")
	}
	return &Renderer{auth: auth, sessions: sessions}
}

// HTML renders a template with the shared context merged into data.
// Flashes are consumed here, so they appear on exactly one page.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	ctx := c.Request.Context()
	if data == nil {
		data = gin.H{}
	}

	owner, err := r.auth.Owner(ctx)
	if err != nil {
		logrus.WithError(err).Error("Renderer: failed to load owner")
	}
	sess := middleware.SessionFromContext(c)

	data["User"] = owner
	data["LoggedIn"] = sess.Authenticated()
	data["Flashes"] = r.sessions.TakeFlashes(ctx, sess)

	c.HTML(status, name, data)
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "404.html", nil)
}

// internalError is the fallback for unexpected service failures.
func internalError(c *gin.Context, err error) {
	logrus.WithError(err).Error("Unhandled internal server error")
	c.String(http.StatusInternalServerError, "Internal Server Error")
	c.Abort()
}
