package bootstrap

import (
	"closet-rental/cmd/bootstrap/components"
	"closet-rental/internal/pkg/config"

	"go.uber.org/fx"
)

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		Storage(cfg.Storage),
		components.UseCaseModule,
		components.LifecycleModule,
		components.HandlerModule,
	)
}

// Storage picks the persistence backend named by STORAGE_DRIVER.
func Storage(cfg config.StorageConfig) fx.Option {
	if cfg.Driver == config.StoragePostgres {
		return fx.Options(DBModule, components.PostgresModule)
	}
	return components.MemoryModule
}
