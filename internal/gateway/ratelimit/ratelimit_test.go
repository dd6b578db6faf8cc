//go:build unit

package ratelimit_test

import (
	"context"
	"net/http"
	nethttptest "net/http/httptest"
	"strconv"
	"testing"
	"time"

	"shareit/internal/gateway/ratelimit"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/tests/common/httptest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(requests int) config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: true, Requests: requests, Window: time.Minute, Prefix: "test:ratelimit"}
}

func newRedisLimiter(t *testing.T, requests int) (*ratelimit.RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.NewRedisLimiter(client, testConfig(requests)), mr
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks past the limit within a window", func(t *testing.T) {
		l, _ := newRedisLimiter(t, 2)

		for i := 0; i < 2; i++ {
			d, err := l.Allow(ctx, "user:1")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "request %d", i+1)
		}
		d, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Positive(t, d.RetryAfter)
		assert.LessOrEqual(t, d.RetryAfter, time.Minute)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l, _ := newRedisLimiter(t, 1)

		d, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		d, err = l.Allow(ctx, "user:2")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("redis failure is reported", func(t *testing.T) {
		l, mr := newRedisLimiter(t, 1)
		mr.Close()

		_, err := l.Allow(ctx, "user:1")
		assert.Error(t, err)
	})
}

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()
	l := ratelimit.NewLocalLimiter(testConfig(3))

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
	}
	d, err := l.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Positive(t, d.RetryAfter)

	d, err = l.Allow(ctx, "ip:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.RateLimitConfig
		wantErr bool
	}{
		{name: "valid", cfg: testConfig(10)},
		{name: "one millisecond window", cfg: config.RateLimitConfig{Requests: 1, Window: time.Millisecond}},
		{name: "zero requests", cfg: config.RateLimitConfig{Requests: 0, Window: time.Minute}, wantErr: true},
		{name: "sub-millisecond window", cfg: config.RateLimitConfig{Requests: 1, Window: 500 * time.Microsecond}, wantErr: true},
		{name: "zero window", cfg: config.RateLimitConfig{Requests: 1}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ratelimit.ValidateConfig(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSubMillisecondWindowFailsWithoutPanicking(t *testing.T) {
	ctx := context.Background()
	cfg := config.RateLimitConfig{Requests: 1, Window: 500 * time.Microsecond, Prefix: "test:ratelimit"}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	for name, l := range map[string]ratelimit.Limiter{
		"redis": ratelimit.NewRedisLimiter(client, cfg),
		"local": ratelimit.NewLocalLimiter(cfg),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := l.Allow(ctx, "ip:10.0.0.1")
				assert.Error(t, err)
			})
		})
	}
}

// requestFrom sends a request from ip carrying the given sharer id.
func requestFrom(r http.Handler, ip string, sharerID int64) *nethttptest.ResponseRecorder {
	req := nethttptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":40000"
	req.Header.Set(middleware.SharerIDHeader, strconv.FormatInt(sharerID, 10))
	rec := nethttptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(l ratelimit.Limiter) *gin.Engine {
		r := gin.New()
		r.Use(middleware.ErrorHandler(), ratelimit.Middleware(l))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	t.Run("429 with retry hint once the quota is spent", func(t *testing.T) {
		l, _ := newRedisLimiter(t, 1)
		r := newRouter(l)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/", nil, 5)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(t, r, http.MethodGet, "/", nil, 5)
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Too many requests")
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		// another client has its own quota
		rec = requestFrom(r, "10.0.0.9", 5)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("changing the sharer header does not refill the quota", func(t *testing.T) {
		r := newRouter(ratelimit.NewLocalLimiter(testConfig(2)))

		allowed := 0
		for id := int64(1); id <= 50; id++ {
			if requestFrom(r, "10.0.0.1", id).Code == http.StatusNoContent {
				allowed++
			}
		}
		assert.Equal(t, 2, allowed)

		rec := requestFrom(r, "10.0.0.2", 1)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("503 when the limiter is down", func(t *testing.T) {
		l, mr := newRedisLimiter(t, 1)
		mr.Close()

		rec := httptest.PerformRequest(t, newRouter(l), http.MethodGet, "/", nil, 5)
		httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Rate limiter unavailable")
	})
}
