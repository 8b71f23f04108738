package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// Each call gets its own counters.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return localRateLimit(maxRequests, window, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// localRateLimit is a fixed-window limiter over process memory. Requests for
// which key returns "" are not counted.
func localRateLimit(maxRequests int, window time.Duration, key func(*gin.Context) string) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)

	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		now := time.Now()

		mu.Lock()
		ci, ok := clients[k]
		if !ok || now.Sub(ci.start) > window {
			ci = &clientInfo{start: now}
			clients[k] = ci
		}
		ci.count++
		count := ci.count

		// drop stale entries once the map grows
		if len(clients) > 10000 {
			for k, v := range clients {
				if now.Sub(v.start) > window {
					delete(clients, k)
				}
			}
		}
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
