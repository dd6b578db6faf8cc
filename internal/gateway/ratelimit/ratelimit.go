// Package ratelimit caps requests per client IP at the gateway. The sharer
// header is not trusted here, so it never selects the bucket.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	errLimited     = errs.New("rate limit exceeded")
	errUnavailable = errs.New("rate limiter unavailable")
)

// MinWindow is the smallest window the fixed-window slots can resolve.
const MinWindow = time.Millisecond

// ValidateConfig rejects settings the limiters cannot enforce.
func ValidateConfig(cfg config.RateLimitConfig) error {
	if cfg.Requests <= 0 {
		return errs.Newf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.Requests)
	}
	if cfg.Window < MinWindow {
		return errs.Newf("RATE_LIMIT_WINDOW must be at least %s, got %s", MinWindow, cfg.Window)
	}
	return nil
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RedisLimiter counts requests in fixed windows shared by every gateway instance.
type RedisLimiter struct {
	client redis.Scripter
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client redis.Scripter, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  int64(cfg.Requests),
		window: cfg.Window,
		prefix: cfg.Prefix,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		return Decision{}, errs.Newf("rate limit window %s is below %s", l.window, MinWindow)
	}
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64Slice()
	if err != nil {
		return Decision{}, errs.Wrapf(err, "rate limit %s", key)
	}
	if len(res) != 2 {
		return Decision{}, errs.Newf("unexpected rate limit reply %v", res)
	}
	if res[0] <= l.limit {
		return Decision{Allowed: true}, nil
	}
	return Decision{RetryAfter: time.Duration(max(res[1], 0)) * time.Millisecond}, nil
}

// maxLocalKeys bounds the per-key limiter map; idle keys are dropped past it.
const maxLocalKeys = 10000

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one token bucket per key in process. The bucket holds
// Requests tokens and refills them over Window.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	every   rate.Limit
	burst   int
	window  time.Duration
	now     func() time.Time
}

func NewLocalLimiter(cfg config.RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		every:   rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:   cfg.Requests,
		window:  cfg.Window,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	if l.window < MinWindow || l.burst <= 0 {
		return Decision{}, errs.Newf("rate limit of %d per %s cannot be enforced", l.burst, l.window)
	}
	now := l.now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= maxLocalKeys {
			l.evictIdle(now)
		}
		e = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return Decision{}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{RetryAfter: delay}, nil
	}
	return Decision{Allowed: true}, nil
}

func (l *LocalLimiter) evictIdle(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.window {
			delete(l.entries, k)
		}
	}
}

// Middleware answers 429 once the caller's quota is spent. Limiter failures
// reject the call with 503.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()

		d, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Rate limiter failed",
				"error", err, "key", key, "request_id", middleware.GetRequestID(c))
			httperr.AbortWithError(c, http.StatusServiceUnavailable, errs.Mark(err, errUnavailable), "Rate limiter unavailable")
			return
		}
		if !d.Allowed {
			if d.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			}
			httperr.AbortWithError(c, http.StatusTooManyRequests, errLimited, "Too many requests")
			return
		}
		c.Next()
	}
}
