package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Process-local sliding-window limiter for the upload endpoints. Strictly
// best-effort: restarts reset it and replicas don't share it. It is never
// consulted for quota or expiry decisions; those live in the record store.
// A shared backend (Redis) is the production upgrade path.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string][]time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) Allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	kept := rl.seen[ip][:0]
	for _, ts := range rl.seen[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.limit {
		rl.seen[ip] = kept
		return false
	}

	rl.seen[ip] = append(kept, now)
	return true
}

func UploadRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"error": "upload rate limit exceeded"},
			)
			return
		}
		c.Next()
	}
}
