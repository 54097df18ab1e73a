package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-watchlist/internal/middleware"
	"movie-watchlist/internal/service"
)

// AuthHandler serves the login, logout and settings pages.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	render   *Renderer
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, render *Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, render: render}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "login.html", nil)
}

// Login handles the login form POST. Credential failures get one generic
// notice regardless of which field was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.sessions.AddFlash(ctx, sess, "Invalid input.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) || errors.Is(err, service.ErrInvalidInput) {
			h.sessions.AddFlash(ctx, sess, "Invalid username or password.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		internalError(c, err)
		return
	}

	if err := h.sessions.BindUser(ctx, sess, user.ID); err != nil {
		internalError(c, err)
		return
	}
	h.sessions.AddFlash(ctx, sess, "Login success.")
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session's user and returns to the list.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	if err := h.sessions.ClearUser(ctx, sess); err != nil {
		internalError(c, err)
		return
	}
	h.sessions.AddFlash(ctx, sess, "Goodbye.")
	c.Redirect(http.StatusFound, "/")
}

// ShowSettings renders the display-name form.
func (h *AuthHandler) ShowSettings(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "settings.html", nil)
}

// UpdateSettings handles the settings form POST.
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	name := c.PostForm("name")
	err := h.auth.UpdateDisplayName(ctx, sess.UserID, name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.sessions.AddFlash(ctx, sess, "Invalid input.")
			c.Redirect(http.StatusFound, "/settings")
			return
		}
		internalError(c, err)
		return
	}

	h.sessions.AddFlash(ctx, sess, "Settings updated.")
	c.Redirect(http.StatusFound, "/")
}
