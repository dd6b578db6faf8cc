package bootstrap

import (
	"log/slog"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/servicetoken"

	"go.uber.org/fx"
)

var ServiceTokenModule = fx.Module("servicetoken",
	fx.Provide(
		NewServiceTokens,
	),
)

// NewServiceTokens returns nil when SERVICE_TOKEN_SECRET is unset.
func NewServiceTokens(cfg config.ServiceTokenConfig) *servicetoken.Service {
	if !cfg.Enabled() {
		slog.Warn("Service tokens disabled; the server trusts X-Sharer-User-Id as sent")
		return nil
	}
	return servicetoken.NewService(cfg.Secret, cfg.TTL)
}
