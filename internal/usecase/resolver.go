package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/simbachain/libsimba-deploy/internal/domain"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// Resolver materializes a pending action's inputs from the table of
// already-completed actions: it is component B of the engine,
// spec.md §4.3.
type Resolver struct {
	assets  ProxyAssetLoader
	encoder CallDataEncoder
}

// NewResolver builds a Resolver against the asset loader and call
// data encoder it needs to materialize an IMPL dependency.
func NewResolver(assets ProxyAssetLoader, encoder CallDataEncoder) *Resolver {
	return &Resolver{assets: assets, encoder: encoder}
}

// Resolve mutates action in place with the inputs its dependencies
// inject, and reports whether the Driver may hand it to the handler.
//
// It returns (false, nil) if the action is already COMPLETED
// (defensive: the Driver should already have skipped it). It returns
// (false, err) the moment a dependency's parent cannot be found in
// completed, naming the unresolved parent. Otherwise it returns
// (true, nil) once every dependency has been applied.
func (r *Resolver) Resolve(ctx context.Context, action *models.Action, completed map[string]*models.Action) (bool, error) {
	if action.ActionState == models.StateCompleted {
		return false, nil
	}

	libs := map[string]string{}
	for _, dep := range action.Dependencies {
		parent, ok := completed[dep.Parent]
		if !ok || parent.Contract == nil {
			return false, fmt.Errorf("%w: dependency on contract %s cannot be resolved", domain.ErrDependencyUnresolved, dep.Parent)
		}

		switch dep.DependencyType {
		case models.DependencyLibrary:
			libs[dep.Parent] = parent.Contract.Address

		case models.DependencyConstructor:
			if action.Args == nil {
				action.Args = map[string]any{}
			}
			action.Args[dep.TargetArg] = parent.Contract.Address

		case models.DependencyContract:
			action.Contract = parent.Contract

		case models.DependencyImpl:
			if err := r.applyImpl(ctx, action, dep, parent.Contract); err != nil {
				return false, err
			}
		}

		action.Libraries = libs
	}

	return true, nil
}

// applyImpl wires the IMPL dependency: the parent becomes the
// implementation a proxy wraps, the proxy's own bytecode and name are
// swapped in from the fixed asset, and the initializer call is
// ABI-encoded into the proxy's constructor args. This overwrites any
// prior Args, Code, ContractName and Encode on the action — by
// design, matching the originating engine.
func (r *Resolver) applyImpl(ctx context.Context, action *models.Action, dep models.Dependency, impl *models.Contract) error {
	asset, err := r.assets.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading proxy asset: %w", err)
	}

	args, err := r.encoder.EncodeCallData(ctx, impl, dep.MethodName, dep.MethodArgs)
	if err != nil {
		return fmt.Errorf("encoding initializer call data: %w", err)
	}

	action.ImplContract = impl
	action.Code = asset
	action.Encode = false
	action.ContractName = models.ProxyContractName
	action.Args = args
	return nil
}

// CompletedNames returns the contract names present in completed, for
// callers that want to report "closest known name" diagnostics
// alongside an unresolved-dependency error.
func CompletedNames(completed map[string]*models.Action) []string {
	return lo.Keys(completed)
}
