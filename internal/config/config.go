package config

import (
	"os"
	"strconv"
	"time"

	"taskboard/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort      string
	DatabaseURL  string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
	DevMode      bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Login/registration attempts per client IP
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Task create/update/delete submissions per user
	WriteRateLimit  int
	WriteRateWindow time.Duration

	Log logger.Config
}

// Load reads the config from the environment (and .env if present)
func Load() *Config {
	_ = godotenv.Load()

	devMode := os.Getenv("DEV_MODE") == "true"

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && !devMode {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// two weeks
	sessionTTL := 14 * 24 * time.Hour
	if n := positiveInt("SESSION_TTL_HOURS"); n > 0 {
		sessionTTL = time.Duration(n) * time.Hour
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	authRateLimit := 10
	if n := positiveInt("AUTH_RATE_LIMIT"); n > 0 {
		authRateLimit = n
	}

	authRateWindow := time.Minute
	if n := positiveInt("AUTH_RATE_WINDOW_SECONDS"); n > 0 {
		authRateWindow = time.Duration(n) * time.Second
	}

	writeRateLimit := 120
	if n := positiveInt("TASK_WRITE_RATE_LIMIT"); n > 0 {
		writeRateLimit = n
	}

	writeRateWindow := time.Minute
	if n := positiveInt("TASK_WRITE_RATE_WINDOW_SECONDS"); n > 0 {
		writeRateWindow = time.Duration(n) * time.Second
	}

	logOutput := os.Getenv("LOG_OUTPUT")
	if logOutput == "" {
		logOutput = "stdout"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "logs/app.log"
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		SessionTTL:      sessionTTL,
		CookieSecure:    os.Getenv("COOKIE_SECURE") == "true",
		DevMode:         devMode,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		AuthRateLimit:   authRateLimit,
		AuthRateWindow:  authRateWindow,
		WriteRateLimit:  writeRateLimit,
		WriteRateWindow: writeRateWindow,
		Log: logger.Config{
			Level:      os.Getenv("LOG_LEVEL"),
			JSON:       os.Getenv("LOG_FORMAT") == "json",
			Output:     logOutput,
			FilePath:   logFile,
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

func positiveInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
