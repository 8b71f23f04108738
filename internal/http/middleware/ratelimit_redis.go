package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// UseRedis sets the shared Redis client used by the rate limiters.
// With a nil client RateLimit and UserRateLimit fall back to process-local
// counters and RedisRateLimit lets requests through.
func UseRedis(rdb *redis.Client) {
	redisClient = rdb
}

// RateLimit limits requests per client IP, through Redis when configured
// and in process memory otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	local := SimpleRateLimit(maxRequests, window)
	remote := RedisRateLimit(maxRequests, window)
	return func(c *gin.Context) {
		if redisClient != nil {
			remote(c)
			return
		}
		local(c)
	}
}

// RedisRateLimit implements a simple fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<route>:<identifier>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.FullPath() + ":" + c.ClientIP()
		if !allow(c, key, maxRequests, window, "X-RateLimit-Error") {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// UserRateLimit limits task writes per signed-in user. Requires Session to run first.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	local := localRateLimit(maxRequests, window, func(c *gin.Context) string {
		if user := CurrentUser(c); user != nil {
			return "user:" + strconv.FormatInt(user.ID, 10)
		}
		return ""
	})
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Next()
			return
		}
		if redisClient == nil {
			local(c)
			return
		}

		key := "user_rl:" + strconv.FormatInt(user.ID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		if !allow(c, key, maxRequests, window, "X-UserRateLimit-Error") {
			RLBlocked.WithLabelValues("user:" + c.FullPath()).Inc()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		RLRequests.WithLabelValues("user:" + c.FullPath()).Inc()
		c.Next()
	}
}

// allow counts the request against key. Redis errors fail open.
func allow(c *gin.Context, key string, maxRequests int, window time.Duration, errHeader string) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		c.Header(errHeader, "redis-error")
		return true
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}
	return val <= int64(maxRequests)
}
