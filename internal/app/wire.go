//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simbachain/libsimba-deploy/internal/adapters"
	"github.com/simbachain/libsimba-deploy/internal/config"
	"github.com/simbachain/libsimba-deploy/internal/logging"
	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance from viper configuration.
func InitApp(v *viper.Viper, cmd *cobra.Command) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Engine components
		usecase.NewResolver,
		usecase.NewHandler,
		usecase.NewDriver,

		// App
		NewApp,
	)
	return nil, nil
}
