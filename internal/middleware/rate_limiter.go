package middleware

import (
	"net/http"
	"sync"
	"time"

	"Cashline/config"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"

	"github.com/gin-gonic/gin"
)

var ErrRateLimitExceeded = appErrors.NewAppError(
	"RATE_LIMIT_EXCEEDED",
	"Muitas requisições. Tente novamente em alguns minutos.",
	http.StatusTooManyRequests,
)

// RateLimiter conta requisições por chave numa janela deslizante.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func NewRateLimiterFromConfig(cfg config.RateLimitConfig) *RateLimiter {
	return NewRateLimiter(cfg.Requests, cfg.Window)
}

// Start inicia a limpeza periódica das chaves expiradas até Stop.
func (rl *RateLimiter) Start() {
	go rl.cleanup()
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, timestamps := range rl.requests {
		valid := rl.inWindow(timestamps, now)
		if len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func (rl *RateLimiter) inWindow(timestamps []time.Time, now time.Time) []time.Time {
	windowStart := now.Add(-rl.window)
	var valid []time.Time
	for _, t := range timestamps {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := rl.inWindow(rl.requests[key], now)

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.Allow(ip) {
			logger.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("Limite de requisições atingido")
			abortWith(c, ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
