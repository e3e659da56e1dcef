// Package models holds the plan-time data model shared by the
// resolver, handler and driver: contracts, dependencies, actions and
// the workflow container that wraps them.
package models

import (
	"fmt"

	"github.com/simbachain/libsimba-deploy/internal/domain"
)

// ProxyContractName is the completed-table key a DEPLOY_PROXY action is
// filed under once the resolver has materialized it. It matches the
// literal SIMBA_PROXY constant of the originating engine.
const ProxyContractName = "SIMBAProxy"

// Contract is the record produced by a deployment, or carried forward
// from a dependency. Every field is optional until the corresponding
// stage of the pipeline populates it.
type Contract struct {
	ID       string         `json:"id,omitempty"`
	Address  string         `json:"address,omitempty"`
	APIName  string         `json:"api_name,omitempty"`
	DesignID string         `json:"design_id,omitempty"`
	ABI      []ABIEntry     `json:"abi,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ABIEntry is one method/constructor/event descriptor of a contract's
// ABI. The engine never interprets these beyond handing them to the
// CallDataEncoder; the shape mirrors the subset go-ethereum's
// accounts/abi package needs to unmarshal a standard Solidity ABI
// entry.
type ABIEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []ABIParam `json:"inputs,omitempty"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// ABIParam is one input or output parameter of an ABIEntry.
type ABIParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DependencyType tags how a dependency's parent result is consumed.
type DependencyType string

const (
	// DependencyLibrary links the parent library's address into the
	// child's bytecode at link time.
	DependencyLibrary DependencyType = "LIBRARY"
	// DependencyConstructor injects the parent's address into the
	// child's constructor args under TargetArg.
	DependencyConstructor DependencyType = "CONSTRUCTOR"
	// DependencyContract adopts the parent's Contract record as this
	// action's own, to perform a method call against it.
	DependencyContract DependencyType = "CONTRACT"
	// DependencyImpl marks the parent as the implementation a proxy
	// action wraps.
	DependencyImpl DependencyType = "IMPL"
)

// Dependency describes how one action consumes a prior action's
// result.
type Dependency struct {
	DependencyType DependencyType `json:"dependency_type"`
	Parent         string         `json:"parent"`

	// TargetArg is the constructor argument name to inject the
	// parent's address into. Required for DependencyConstructor.
	TargetArg string `json:"target_arg,omitempty"`

	// MethodName and MethodArgs describe the initializer call to
	// encode into a proxy's constructor data. Required for
	// DependencyImpl.
	MethodName string         `json:"method_name,omitempty"`
	MethodArgs map[string]any `json:"method_args,omitempty"`
}

// Validate checks that a dependency carries the fields its type
// requires.
func (d Dependency) Validate() error {
	if d.Parent == "" {
		return fmt.Errorf("%w: dependency.parent", domain.ErrMissingField)
	}
	switch d.DependencyType {
	case DependencyConstructor:
		if d.TargetArg == "" {
			return fmt.Errorf("%w: dependency.target_arg", domain.ErrMissingField)
		}
	case DependencyImpl:
		if d.MethodName == "" {
			return fmt.Errorf("%w: dependency.method_name", domain.ErrMissingField)
		}
	case DependencyLibrary, DependencyContract:
		// parent is sufficient
	default:
		return fmt.Errorf("%w: dependency.dependency_type", domain.ErrMissingField)
	}
	return nil
}

// ActionType tags the four kinds of deployment step a plan can
// declare.
type ActionType string

const (
	ActionDeployLibrary ActionType = "DEPLOY_LIBRARY"
	ActionDeployContract ActionType = "DEPLOY_CONTRACT"
	ActionMethodCall     ActionType = "METHOD_CALL"
	ActionDeployProxy    ActionType = "DEPLOY_PROXY"
)

// ActionState is the per-action state machine. All FAILED_* states
// except InvalidState are retryable: re-invoking the driver re-enters
// the handler at the appropriate phase.
type ActionState string

const (
	StateInited             ActionState = "INITED"
	StateCompiled            ActionState = "COMPILED"
	StateCompleted           ActionState = "COMPLETED"
	StateFailedCompile       ActionState = "FAILED_COMPILE"
	StateFailedComplete      ActionState = "FAILED_COMPLETE"
	StateFailedMethodCall    ActionState = "FAILED_METHOD_CALL"
	StateFailedSetProxy      ActionState = "FAILED_SET_PROXY"
	StateFailedDependencies  ActionState = "FAILED_DEPENDENCIES"
	StateInvalid             ActionState = "INVALID_STATE"
)

// Retryable reports whether a re-invocation of the driver may resume
// an action sitting in this state. Every FAILED_* state is retryable
// except InvalidState, which is terminal-bad.
func (s ActionState) Retryable() bool {
	switch s {
	case StateFailedCompile, StateFailedComplete, StateFailedMethodCall,
		StateFailedSetProxy, StateFailedDependencies:
		return true
	default:
		return false
	}
}

// Action is one step of the plan. ContractName and Code are optional
// for DEPLOY_PROXY: the resolver fills them in from the fixed proxy
// asset once the IMPL dependency resolves.
type Action struct {
	ActionType   ActionType     `json:"action_type"`
	ContractName string         `json:"contract_name,omitempty"`
	Code         string         `json:"code,omitempty"`
	Dependencies []Dependency   `json:"dependencies,omitempty"`
	APIName      string         `json:"api_name,omitempty"`
	MethodName   string         `json:"method_name,omitempty"`
	Args         map[string]any `json:"args,omitempty"`

	Contract     *Contract `json:"contract,omitempty"`
	ImplContract *Contract `json:"impl_contract,omitempty"`

	// Encode indicates whether Code must be base64-encoded in transit
	// to the platform. The IMPL dependency clears this when it injects
	// the already-encoded proxy asset.
	Encode bool `json:"encode"`

	// Libraries maps a dependency's contract name to its deployed
	// address, for link-time substitution during compile.
	Libraries map[string]string `json:"libraries,omitempty"`

	ActionState  ActionState `json:"action_state"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// RequiredFields returns the field names invariant (5) requires for
// this action's type to be present, in the order they should be
// reported.
func (a *Action) RequiredFields() []string {
	switch a.ActionType {
	case ActionDeployLibrary:
		return []string{"contract_name", "code"}
	case ActionDeployContract:
		return []string{"contract_name", "code", "api_name"}
	case ActionMethodCall:
		return []string{"method_name", "api_name"}
	case ActionDeployProxy:
		return []string{"api_name"}
	default:
		return nil
	}
}

// field returns the value of one of the names RequiredFields can
// produce, for the "is it present" check in the validator.
func (a *Action) field(name string) string {
	switch name {
	case "contract_name":
		return a.ContractName
	case "code":
		return a.Code
	case "api_name":
		return a.APIName
	case "method_name":
		return a.MethodName
	default:
		return ""
	}
}

// ValidateFields checks invariant (5): every field RequiredFields
// names for this action's type is non-empty.
func (a *Action) ValidateFields() error {
	for _, f := range a.RequiredFields() {
		if a.field(f) == "" {
			return fmt.Errorf("%w: %s is required for action type %s", domain.ErrMissingField, f, a.ActionType)
		}
	}
	return nil
}

// HasImplDependency reports whether the action declares an IMPL
// dependency, which DEPLOY_PROXY actions require.
func (a *Action) HasImplDependency() bool {
	for _, d := range a.Dependencies {
		if d.DependencyType == DependencyImpl {
			return true
		}
	}
	return false
}

// Workflow is the top-level container: scoping identifiers, the
// ordered sequence of still-pending actions, and the table of
// completed ones. A Workflow value is not safe for concurrent
// mutation; a single logical owner drives it through successive
// Deploy calls.
type Workflow struct {
	AppName    string `json:"app_name"`
	Org        string `json:"org"`
	Blockchain string `json:"blockchain"`
	Storage    string `json:"storage,omitempty"`

	Actions   []*Action          `json:"actions"`
	Completed map[string]*Action `json:"completed"`
}

