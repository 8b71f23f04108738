package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Creates (or signs in) a user and prints a session token for manual testing:
//
//	go run ./cmd/create_test_user -username alice -password 's3cret-pass'
//	curl -b "session=<token>" localhost:8080/
func main() {
	username := flag.String("username", "testuser", "username")
	password := flag.String("password", "", "password (min 8 characters)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Log.Level, false)

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}
	if *password == "" {
		logger.Fatal("-password is required")
	}

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	service.InitJWT(cfg.JWTSecret, cfg.SessionTTL)
	auth := service.NewAuthService(repository.NewUserRepository(pool))
	ctx := context.Background()

	u, err := auth.Register(ctx, service.RegisterInput{
		Username:  *username,
		Password1: *password,
		Password2: *password,
	})
	var ve *domain.ValidationError
	switch {
	case err == nil:
		logger.Info("user created", "user_id", u.ID, "username", u.Username)
	case errors.As(err, &ve) && ve.Fields["username"] != "":
		u, err = auth.Authenticate(ctx, *username, *password)
		if err != nil {
			logger.Fatal("user exists but sign in failed", "username", *username, "error", err)
		}
		logger.Info("user already exists", "user_id", u.ID)
	default:
		logger.Fatal("create user failed", "error", err)
	}

	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		logger.Fatal("generate token", "error", err)
	}
	fmt.Fprintln(os.Stdout, token)
}
