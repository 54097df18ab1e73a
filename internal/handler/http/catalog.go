package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie-watchlist/internal/middleware"
	"movie-watchlist/internal/service"
)

// CatalogHandler serves the movie list and its mutation forms.
type CatalogHandler struct {
	catalog  *service.CatalogService
	sessions *service.SessionService
	render   *Renderer

	// requireAuth gates catalog mutations behind login. The gate-free
	// variant of the app runs with this off.
	requireAuth bool
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, sessions *service.SessionService, render *Renderer, requireAuth bool) *CatalogHandler {
	return &CatalogHandler{
		catalog:     catalog,
		sessions:    sessions,
		render:      render,
		requireAuth: requireAuth,
	}
}

// Index renders the movie list.
func (h *CatalogHandler) Index(c *gin.Context) {
	movies, err := h.catalog.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	h.render.HTML(c, http.StatusOK, "index.html", gin.H{"Movies": movies})
}

// CreateMovie handles the add form on the list page. The auth check is
// inline rather than route-level so an anonymous POST bounces back to the
// list instead of the login page.
func (h *CatalogHandler) CreateMovie(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	if h.requireAuth && !sess.Authenticated() {
		h.sessions.AddFlash(ctx, sess, "Please login first to add movies.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	title := c.PostForm("title")
	year := c.PostForm("year")
	if _, err := h.catalog.Create(ctx, title, year); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.sessions.AddFlash(ctx, sess, "Invalid input.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		internalError(c, err)
		return
	}

	h.sessions.AddFlash(ctx, sess, "Item created.")
	c.Redirect(http.StatusFound, "/")
}

// ShowEdit renders the edit form for one movie, or the 404 page.
func (h *CatalogHandler) ShowEdit(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}
	movie, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			h.render.NotFound(c)
			return
		}
		internalError(c, err)
		return
	}
	h.render.HTML(c, http.StatusOK, "edit.html", gin.H{"Movie": movie})
}

// UpdateMovie handles the edit form POST. Validation failures bounce back
// to the same form without persisting anything.
func (h *CatalogHandler) UpdateMovie(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	id, ok := h.movieID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	year := c.PostForm("year")
	err := h.catalog.Update(ctx, id, title, year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			h.sessions.AddFlash(ctx, sess, "Invalid input.")
			c.Redirect(http.StatusFound, "/edit/"+strconv.FormatUint(uint64(id), 10))
		case errors.Is(err, service.ErrMovieNotFound):
			h.render.NotFound(c)
		default:
			internalError(c, err)
		}
		return
	}

	h.sessions.AddFlash(ctx, sess, "Movie updated.")
	c.Redirect(http.StatusFound, "/")
}

// DeleteMovie removes a movie permanently, or renders 404 when the id is
// absent.
func (h *CatalogHandler) DeleteMovie(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(c)

	id, ok := h.movieID(c)
	if !ok {
		return
	}

	err := h.catalog.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			h.render.NotFound(c)
			return
		}
		internalError(c, err)
		return
	}

	h.sessions.AddFlash(ctx, sess, "Item deleted.")
	c.Redirect(http.StatusFound, "/")
}

// movieID parses the :id route parameter. A non-numeric id renders the
// 404 page, same as a numeric id that matches nothing.
func (h *CatalogHandler) movieID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.render.NotFound(c)
		return 0, false
	}
	return uint(id), true
}
