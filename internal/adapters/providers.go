// Package adapters groups the google/wire provider sets for every
// concrete implementation of a usecase port.
package adapters

import (
	"github.com/google/wire"

	"github.com/simbachain/libsimba-deploy/internal/adapters/calldata"
	"github.com/simbachain/libsimba-deploy/internal/adapters/platform"
	"github.com/simbachain/libsimba-deploy/internal/adapters/progress"
	"github.com/simbachain/libsimba-deploy/internal/adapters/proxyasset"
	"github.com/simbachain/libsimba-deploy/internal/adapters/registry"
	"github.com/simbachain/libsimba-deploy/internal/config"
	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// ProvideExecutor builds the platform Executor from runtime config.
func ProvideExecutor(cfg *config.RuntimeConfig) usecase.Executor {
	return platform.New(cfg.PlatformURL, cfg.APIKey)
}

// ProvideEncoder builds the CallDataEncoder.
func ProvideEncoder() usecase.CallDataEncoder {
	return calldata.NewEncoder()
}

// ProvideProxyAssetLoader builds the ProxyAssetLoader.
func ProvideProxyAssetLoader() usecase.ProxyAssetLoader {
	return proxyasset.NewLoader()
}

// ProvideRepository builds the WorkflowRepository, rooted at the
// project's configured directory.
func ProvideRepository(cfg *config.RuntimeConfig) (usecase.WorkflowRepository, error) {
	return registry.NewFileStore(cfg.ProjectRoot)
}

// ProvideProgress builds the ProgressSink: a spinner in interactive
// mode, a no-op sink otherwise.
func ProvideProgress(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive {
		return progress.NewNopReporter()
	}
	return progress.NewSpinnerReporter()
}

// PlatformSet wires the remote platform Executor.
var PlatformSet = wire.NewSet(
	ProvideExecutor,
)

// CallDataSet wires the ABI call data encoder.
var CallDataSet = wire.NewSet(
	ProvideEncoder,
)

// ProxyAssetSet wires the fixed proxy asset loader.
var ProxyAssetSet = wire.NewSet(
	ProvideProxyAssetLoader,
)

// RegistrySet wires resumable workflow state persistence.
var RegistrySet = wire.NewSet(
	ProvideRepository,
)

// ProgressSet wires CLI progress reporting.
var ProgressSet = wire.NewSet(
	ProvideProgress,
)

// AllAdapters includes every adapter provider set.
var AllAdapters = wire.NewSet(
	PlatformSet,
	CallDataSet,
	ProxyAssetSet,
	RegistrySet,
	ProgressSet,
)
