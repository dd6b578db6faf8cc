package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/db"
	"shareit/internal/infra/memory"
	"shareit/internal/infra/uow"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the storage selected by STORAGE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config) (shared.UnitOfWork, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		slog.Info("Using in-memory storage; data is lost on restart")
		return memory.NewUnitOfWork(memory.NewStore()), nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return nil, err
	}
	return uow.NewPostgresUoW(pool), nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
