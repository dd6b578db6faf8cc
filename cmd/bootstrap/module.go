package bootstrap

import (
	"shareit/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	ServiceTokenModule,
	components.UseCaseModule,
	components.HandlerModule,
)

var GatewayModule = fx.Options(
	GatewayConfigModule,
	LoggerModule,
	ServiceTokenModule,
	components.GatewayModule,
)
