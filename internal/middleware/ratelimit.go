// File: internal/middleware/ratelimit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
)

// clientLimiter pairs a token bucket with its last use so idle entries can
// be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket. Authenticated requests are
// keyed by user, anonymous ones by IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	logger  *zap.Logger
}

// NewRateLimiter builds the limiter from config and starts the idle entry
// sweeper.
func NewRateLimiter(cfg *config.Config, logger *zap.Logger) *RateLimiter {
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 120
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = perMinute / 2
	}

	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		logger:  logger.Named("rate_limiter"),
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for key, cl := range rl.clients {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns the Gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid := common.GetFirebaseUIDFromContext(c); uid != "" {
			key = uid
		}

		if !rl.limiterFor(key).Allow() {
			rl.logger.Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrTooManyRequests.WithDetails("Too many requests. Slow down and try again."))
			return
		}
		c.Next()
	}
}
