package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	CookieSecure bool
}

type Handler struct {
	Tasks        *service.TaskService
	Auth         *service.AuthService
	Revoker      service.SessionRevoker
	CookieSecure bool
}

func NewHandler(tasks *service.TaskService, auth *service.AuthService, revoker service.SessionRevoker, cfg HandlerConfig) *Handler {
	if revoker == nil {
		revoker = service.NewSessionRevoker(nil)
	}
	return &Handler{
		Tasks:        tasks,
		Auth:         auth,
		Revoker:      revoker,
		CookieSecure: cfg.CookieSecure,
	}
}

// parseID reads the :id route parameter. A malformed id is simply not found.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// fail renders the response for an error that is not a form validation error.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		NotFound(c)
	case errors.Is(err, domain.ErrUnauthenticated):
		c.Redirect(http.StatusFound, middleware.LoginPath)
	default:
		_ = c.Error(err)
		logger.WithContext(c.Request.Context()).Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"PageTitle": "Server Error"})
	}
}

// NotFound renders the 404 page; also used as the router's NoRoute handler.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{"PageTitle": "Not Found"})
}
