package components

import (
	"context"
	"fmt"
	"log/slog"

	"shareit/internal/gateway"
	"shareit/internal/gateway/ratelimit"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/servicetoken"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		clock.NewRealClock,
		gateway.NewValidator,
		NewGatewayClient,
		gateway.NewHandler,
		NewRateLimiter,
	),
	fx.Invoke(gateway.NewRouter),
)

func NewGatewayClient(cfg config.GatewayConfig, tokens *servicetoken.Service) *gateway.Client {
	if tokens == nil {
		return gateway.NewClient(cfg.Gateway, nil)
	}
	return gateway.NewClient(cfg.Gateway, tokens)
}

// NewRateLimiter returns nil when rate limiting is off, a Redis limiter when
// REDIS_ADDR is set and an in-process one otherwise.
func NewRateLimiter(lc fx.Lifecycle, cfg config.GatewayConfig) (ratelimit.Limiter, error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil, nil
	}
	if err := ratelimit.ValidateConfig(rl); err != nil {
		return nil, err
	}
	if cfg.Redis.Addr == "" {
		slog.Info("Rate limiting in process", "requests", rl.Requests, "window", rl.Window)
		return ratelimit.NewLocalLimiter(rl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
			}
			slog.Info("Rate limiting through redis", "addr", cfg.Redis.Addr, "requests", rl.Requests, "window", rl.Window)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return ratelimit.NewRedisLimiter(client, rl), nil
}
