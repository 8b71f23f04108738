package http

import (
	"time"

	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteConfig holds the rate limits applied to the routes.
type RouteConfig struct {
	AuthRateLimit   int
	AuthRateWindow  time.Duration
	WriteRateLimit  int
	WriteRateWindow time.Duration
}

// NewRouter builds the engine with templates, ambient middleware and all routes.
func NewRouter(h *handlers.Handler, health *handlers.HealthHandler, users middleware.UserResolver, cfg RouteConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(users, h.Revoker))
	r.Use(middleware.RequestLogger())
	r.SetHTMLTemplate(Templates())

	RegisterRoutes(r, h, health, cfg)
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, cfg RouteConfig) {
	if cfg.AuthRateLimit <= 0 {
		cfg.AuthRateLimit = 10
	}
	if cfg.AuthRateWindow <= 0 {
		cfg.AuthRateWindow = time.Minute
	}
	if cfg.WriteRateLimit <= 0 {
		cfg.WriteRateLimit = 120
	}
	if cfg.WriteRateWindow <= 0 {
		cfg.WriteRateWindow = time.Minute
	}

	// Health checks and metrics (no auth, no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authentication pages
	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	guest := middleware.RedirectAuthenticated("/")
	r.GET("/login/", guest, h.LoginForm)
	r.POST("/login/", guest, authRL, h.Login)
	r.GET("/logout/", h.Logout)
	r.GET("/register/", guest, h.RegisterForm)
	r.POST("/register/", guest, authRL, h.Register)

	// Task pages
	writeRL := middleware.UserRateLimit(cfg.WriteRateLimit, cfg.WriteRateWindow)
	tasks := r.Group("/")
	tasks.Use(middleware.RequireLogin())
	{
		tasks.GET("/", h.TaskList)
		tasks.GET("/task/:id/", h.TaskDetail)
		tasks.POST("/task/:id/", h.TaskDetail)
		tasks.GET("/task-create/", h.TaskCreateForm)
		tasks.POST("/task-create/", writeRL, h.TaskCreate)
		tasks.GET("/task-update/:id/", h.TaskUpdateForm)
		tasks.POST("/task-update/:id/", writeRL, h.TaskUpdate)
		tasks.GET("/task-delete/:id/", h.TaskDeleteConfirm)
		tasks.POST("/task-delete/:id/", writeRL, h.TaskDelete)
	}

	r.NoRoute(handlers.NotFound)
}
