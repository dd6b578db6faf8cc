package bootstrap

import (
	"errors"
	"io/fs"
	"log/slog"

	"shareit/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
		func(cfg config.Config) config.LogConfig { return cfg.Log },
		func(cfg config.Config) config.ServiceTokenConfig { return cfg.ServiceToken },
	),
)

var GatewayConfigModule = fx.Module("config",
	fx.Provide(
		LoadGatewayConfig,
		func(cfg config.GatewayConfig) config.LogConfig { return cfg.Log },
		func(cfg config.GatewayConfig) config.ServiceTokenConfig { return cfg.ServiceToken },
	),
)

func LoadConfig() (config.Config, error) {
	loadDotEnv()
	return config.LoadConfig()
}

func LoadGatewayConfig() (config.GatewayConfig, error) {
	loadDotEnv()
	return config.LoadGatewayConfig()
}

// loadDotEnv fills unset variables from ./.env when the file exists.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env", "error", err)
	}
}
