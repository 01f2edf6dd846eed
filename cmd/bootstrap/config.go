package bootstrap

import (
	"closet-rental/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies the configuration loaded before the graph is built,
// since the storage backend is chosen from it.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
