// Package usecase implements the three algorithmic components of the
// engine — the dependency resolver, the per-action handler, and the
// resumable workflow driver — against a small set of capability
// interfaces. Concrete wiring to a blockchain client or a remote
// deployment platform lives in internal/adapters; this package only
// ever sees the interfaces below.
package usecase

import (
	"context"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// LibraryExecutor deploys a standalone library contract. Compile and
// deploy happen in one platform call for libraries.
type LibraryExecutor interface {
	DeployLibrary(ctx context.Context, params DeployLibraryParams) (*models.Contract, error)
}

// DeployLibraryParams carries the inputs to a deploy_library call.
type DeployLibraryParams struct {
	Org        string
	LibName    string
	Code       string
	Blockchain string
	AppName    string
	Encode     bool
}

// CompileExecutor compiles contract source into a deployable design.
type CompileExecutor interface {
	CompileContract(ctx context.Context, params CompileParams) (*models.Contract, error)
}

// CompileParams carries the inputs to a compile_contract call.
type CompileParams struct {
	Name            string
	Code            string
	TargetContract  string
	Libraries       map[string]string
	Encode          bool
}

// DeployExecutor deploys a previously compiled contract design.
type DeployExecutor interface {
	DeployContract(ctx context.Context, params DeployContractParams) (*models.Contract, error)
}

// DeployContractParams carries the inputs to a deploy_contract call.
type DeployContractParams struct {
	Contract   *models.Contract
	APIName    string
	Blockchain string
	Storage    string
	AppName    string
	Args       map[string]any
}

// TransactionExecutor submits a method-call transaction against an
// already-deployed contract.
type TransactionExecutor interface {
	SubmitTransaction(ctx context.Context, params SubmitTransactionParams) (string, error)
}

// SubmitTransactionParams carries the inputs to a submit_transaction
// call.
type SubmitTransactionParams struct {
	APIName string
	Method  string
	Args    map[string]any
	Wait    bool
}

// ProxyExecutor wires a deployed proxy to its implementation.
type ProxyExecutor interface {
	SetProxy(ctx context.Context, params SetProxyParams) (string, error)
}

// SetProxyParams carries the inputs to a set_proxy call.
type SetProxyParams struct {
	Workflow       *models.Workflow
	ProxyContract  *models.Contract
	ImplContract   *models.Contract
}

// Executor is the complete capability set the Action Handler is
// polymorphic over — the five platform operations of spec.md §4.2.
// Each returns a (value, error) pair; none of them panics on ordinary
// platform failure. A concrete adapter (internal/adapters/platform)
// implements this against the remote deployment API; the handler
// depends only on the interface.
type Executor interface {
	LibraryExecutor
	CompileExecutor
	DeployExecutor
	TransactionExecutor
	ProxyExecutor
}

// CallDataEncoder ABI-encodes a proxy's initializer call. It looks up
// the ordered parameter list at
// metadata.contract.methods.<method_name>.params, projects args in
// that order by the param's name field, and returns the proxy
// constructor's "_logic"/"_data" argument pair.
type CallDataEncoder interface {
	EncodeCallData(ctx context.Context, impl *models.Contract, methodName string, args map[string]any) (map[string]any, error)
}

// ProxyAssetLoader returns the fixed, base64-encoded proxy contract
// source the resolver injects into a DEPLOY_PROXY action.
type ProxyAssetLoader interface {
	Load(ctx context.Context) (string, error)
}

// WorkflowRepository persists a Workflow between driver invocations,
// so that a crashed or interrupted run can be resumed by reloading the
// same value and calling Deploy again. The engine itself performs no
// persistence (spec.md §6.5); this is purely a convenience the CLI
// layer uses.
type WorkflowRepository interface {
	Load(ctx context.Context, name string) (*models.Workflow, error)
	Save(ctx context.Context, name string, workflow *models.Workflow) error
}

// ProgressStage names a point of interest in a single Deploy pass, for
// ProgressSink consumers (a CLI spinner, a log line) to react to.
type ProgressStage string

const (
	StageResolving ProgressStage = "resolving"
	StageExecuting ProgressStage = "executing"
	StageAdvanced  ProgressStage = "advanced"
	StageStopped   ProgressStage = "stopped"
)

// ProgressEvent reports one point of interest during a Deploy pass.
type ProgressEvent struct {
	Stage   ProgressStage
	Action  *models.Action
	Index   int
	Total   int
	Message string
}

// ProgressSink receives progress events as the driver advances through
// a plan.
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
}

// NopProgress is a no-op ProgressSink, used in tests and non-interactive
// contexts.
type NopProgress struct{}

// OnProgress implements ProgressSink by doing nothing.
func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
