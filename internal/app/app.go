// Package app wires the engine's ports to concrete adapters and holds
// the resulting container for the CLI layer.
package app

import (
	"log/slog"

	"github.com/simbachain/libsimba-deploy/internal/config"
	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// App is the application container the CLI commands operate against.
type App struct {
	Config *config.RuntimeConfig
	Logger *slog.Logger

	Resolver *usecase.Resolver
	Handler  *usecase.Handler
	Driver   *usecase.Driver

	Repository usecase.WorkflowRepository
	Progress   usecase.ProgressSink
}

// NewApp assembles the container from its wired dependencies.
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	resolver *usecase.Resolver,
	handler *usecase.Handler,
	driver *usecase.Driver,
	repository usecase.WorkflowRepository,
	progress usecase.ProgressSink,
) (*App, error) {
	return &App{
		Config:     cfg,
		Logger:     logger,
		Resolver:   resolver,
		Handler:    handler,
		Driver:     driver,
		Repository: repository,
		Progress:   progress,
	}, nil
}
