package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/db"
	httpServer "taskboard/internal/http"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	if err := logger.InitWithConfig(cfg.Log); err != nil {
		logger.Fatal("failed to init logger", "error", err)
	}
	service.InitJWT(cfg.JWTSecret, cfg.SessionTTL)

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		taskRepo service.TaskRepository
		userRepo service.UserRepository
		pinger   handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		dbPool := db.Connect(cfg.DatabaseURL)
		defer dbPool.Close()
		taskRepo = repository.NewTaskRepository(dbPool)
		userRepo = repository.NewUserRepository(dbPool)
		pinger = dbPool
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store (data is lost on restart)")
		mem := repository.NewMemoryStore()
		taskRepo = mem.Tasks()
		userRepo = mem.Users()
	}

	rdb := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	middleware.UseRedis(rdb)
	var redisPing func(ctx context.Context) error
	if rdb != nil {
		defer rdb.Close()
		redisPing = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	taskService := service.NewTaskService(service.NewTaskStore(taskRepo))
	authService := service.NewAuthService(userRepo)
	h := handlers.NewHandler(taskService, authService, service.NewSessionRevoker(rdb), handlers.HandlerConfig{
		CookieSecure: cfg.CookieSecure,
	})
	health := handlers.NewHealthHandler(pinger, redisPing, version)

	r := httpServer.NewRouter(h, health, authService, httpServer.RouteConfig{
		AuthRateLimit:   cfg.AuthRateLimit,
		AuthRateWindow:  cfg.AuthRateWindow,
		WriteRateLimit:  cfg.WriteRateLimit,
		WriteRateWindow: cfg.WriteRateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}
