package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	// Allow consumes one request for key and returns whether it is allowed,
	// how many remain and when the allowance resets.
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	Config() RateLimitConfig
}

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a new rate limiter backed by Redis
func NewRedisLimiter(client *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: client, config: config, now: time.Now}
}

func (rl *RedisLimiter) Config() RateLimitConfig { return rl.config }

// Allow increments the counter for the current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := max(rl.config.Limit-count, 0)
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LocalLimiter is an in-process token bucket per key, used when no Redis
// server is configured.
type LocalLimiter struct {
	config RateLimitConfig

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh chan struct{}
	once   sync.Once
}

// NewLocalLimiter starts a limiter refilling Limit tokens per Window.
// Stop must be called to end its cleanup goroutine.
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	l := &LocalLimiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *LocalLimiter) Config() RateLimitConfig { return l.config }

// Stop ends the cleanup goroutine.
func (l *LocalLimiter) Stop() {
	l.once.Do(func() { close(l.stopCh) })
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()

	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(every), l.config.Limit)}
		l.clients[key] = cl
	}
	cl.lastAccess = now
	l.mu.Unlock()

	allowed := cl.limiter.AllowN(now, 1)
	tokens := cl.limiter.TokensAt(now)
	remaining := max(int(tokens), 0)

	reset := now
	if missing := float64(l.config.Limit) - tokens; missing > 0 {
		reset = now.Add(time.Duration(missing / float64(cl.limiter.Limit()) * float64(time.Second)))
	}
	return allowed, remaining, reset, nil
}

func (l *LocalLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.Window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.cleanup(time.Now())
		}
	}
}

// cleanup drops limiters idle for longer than two windows.
func (l *LocalLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, cl := range l.clients {
		if now.Sub(cl.lastAccess) > 2*l.config.Window {
			delete(l.clients, key)
		}
	}
}

// RateLimit returns a Gin middleware limiting requests per client IP.
// Limiter failures are logged and the request is let through.
func RateLimit(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	cfg := limiter.Config()
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limit check failed", "error", err, "client_ip", key)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := max(int(time.Until(resetTime).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Warn("rate limit exceeded", "client_ip", key, "route", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", cfg.Limit, cfg.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
