package main

import (
	"context"
	"log/slog"
	"os"

	"shareit/cmd/bootstrap"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func startGateway(lc fx.Lifecycle, engine *gin.Engine, cfg config.GatewayConfig, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			listenAddr := ":" + cfg.Gateway.Port
			logger.Info("Starting gateway", "address", listenAddr, "server_url", cfg.Gateway.ServerURL, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("Gateway failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("Stopping gateway")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.GatewayModule,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			startGateway,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start gateway", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop gateway", "error", err)
	}

	slog.Info("Gateway stopped")
}
