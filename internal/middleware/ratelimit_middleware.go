package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/errors"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP with a token bucket.
// Used on the auth endpoints to slow down credential stuffing.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    r,
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = limiter
	}
	return limiter
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			log := GetLoggerFromContext(c)
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"ip":   c.ClientIP(),
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
