//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"avd/internal"
	"avd/internal/controllers"
	"avd/internal/database"
	"avd/internal/providers"
	"avd/internal/services"
	"avd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		database.NewZstdCompressor,
		database.NewFileAdapter,
		services.NewDatabaseService,
		services.NewGeneratorService,
		database.NewBackupManager,
		database.NewCodec,
		database.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
