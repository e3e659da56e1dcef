package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbachain/libsimba-deploy/internal/adapters/calldata"
	"github.com/simbachain/libsimba-deploy/internal/adapters/proxyasset"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// countingExecutor reproduces the golden resumption scenario of the
// originating engine's test suite: a single counter shared across all
// five Executor operations, bumped once per Deploy pass by the test
// (not per call), that fails a different operation on its first three
// values before succeeding on the fourth.
type countingExecutor struct {
	count int
}

var initializeABI = []models.ABIEntry{
	{
		Type: "function",
		Name: "initialize",
		Inputs: []models.ABIParam{
			{Name: "name", Type: "string"},
			{Name: "symbol", Type: "string"},
			{Name: "contractNamespace", Type: "string"},
			{Name: "admin", Type: "address"},
			{Name: "minter", Type: "address"},
			{Name: "pauser", Type: "address"},
			{Name: "maxSupply", Type: "uint256"},
		},
		StateMutability: "nonpayable",
	},
}

var initializeMetadata = map[string]any{
	"contract": map[string]any{
		"methods": map[string]any{
			"initialize": map[string]any{
				"params": []any{
					map[string]any{"name": "name", "type": "string"},
					map[string]any{"name": "symbol", "type": "string"},
					map[string]any{"name": "contractNamespace", "type": "string"},
					map[string]any{"name": "admin", "type": "address"},
					map[string]any{"name": "minter", "type": "address"},
					map[string]any{"name": "pauser", "type": "address"},
					map[string]any{"name": "maxSupply", "type": "uint256"},
				},
			},
		},
	},
}

func (e *countingExecutor) DeployLibrary(_ context.Context, p DeployLibraryParams) (*models.Contract, error) {
	if e.count == 1 {
		return nil, fmt.Errorf("could not deploy lib for some reason")
	}
	return &models.Contract{
		ID:      fmt.Sprintf("%d", e.count),
		Address: fmt.Sprintf("0x%d", e.count),
	}, nil
}

func (e *countingExecutor) CompileContract(_ context.Context, p CompileParams) (*models.Contract, error) {
	if e.count == 2 {
		return nil, fmt.Errorf("could not compile design")
	}
	if p.Name == models.ProxyContractName {
		return &models.Contract{DesignID: fmt.Sprintf("%d", e.count)}, nil
	}
	return &models.Contract{
		DesignID: fmt.Sprintf("%d", e.count),
		ABI:      initializeABI,
		Metadata: initializeMetadata,
	}, nil
}

func (e *countingExecutor) DeployContract(_ context.Context, p DeployContractParams) (*models.Contract, error) {
	if e.count == 3 {
		return nil, fmt.Errorf("could not deploy contract")
	}
	p.Contract.Address = fmt.Sprintf("0x%d", e.count)
	p.Contract.ID = fmt.Sprintf("%d", e.count)
	p.Contract.APIName = p.APIName
	return p.Contract, nil
}

func (e *countingExecutor) SubmitTransaction(_ context.Context, p SubmitTransactionParams) (string, error) {
	return fmt.Sprintf("0x%d", e.count), nil
}

func (e *countingExecutor) SetProxy(_ context.Context, p SetProxyParams) (string, error) {
	return fmt.Sprintf("0x%d", e.count), nil
}

func goldenWorkflow() *models.Workflow {
	return &models.Workflow{
		Org:        "MyOrg",
		AppName:    "myApp",
		Blockchain: "Quorum",
		Completed:  map[string]*models.Action{},
		Actions: []*models.Action{
			{ActionType: models.ActionDeployLibrary, ContractName: "DataUri", Code: "hello world"},
			{ActionType: models.ActionDeployLibrary, ContractName: "Metadata", Code: "hello world"},
			{
				ActionType:   models.ActionDeployContract,
				ContractName: "MyNft",
				APIName:      "my-api",
				Code:         "hello world",
				Dependencies: []models.Dependency{
					{DependencyType: models.DependencyLibrary, Parent: "DataUri"},
					{DependencyType: models.DependencyLibrary, Parent: "Metadata"},
				},
			},
			{
				ActionType: models.ActionDeployProxy,
				APIName:    "my-proxy",
				Dependencies: []models.Dependency{
					{
						DependencyType: models.DependencyImpl,
						Parent:         "MyNft",
						MethodName:     "initialize",
						MethodArgs: map[string]any{
							"name":              "My NFT",
							"symbol":            "MNT",
							"contractNamespace": "com.simbachain",
							"admin":             "0xa508dD875f10C33C52a8abb20E16fc68E981F186",
							"minter":            "0xa508dD875f10C33C52a8abb20E16fc68E981F186",
							"pauser":            "0xa508dD875f10C33C52a8abb20E16fc68E981F186",
							"maxSupply":         float64(0),
						},
					},
				},
			},
		},
	}
}

// TestDriver_GoldenResumption reruns the originating engine's
// resumption scenario: four Deploy passes, each failing at a later
// point until the fourth pass drives the plan to completion.
func TestDriver_GoldenResumption(t *testing.T) {
	exec := &countingExecutor{}
	resolver := NewResolver(proxyasset.NewLoader(), calldata.NewEncoder())
	handler := NewHandler(exec)
	driver := NewDriver(resolver, handler, NopProgress{})

	workflow := goldenWorkflow()

	exec.count = 1
	workflow = driver.Deploy(context.Background(), workflow)
	assert.Len(t, workflow.Completed, 0)
	require.NotEmpty(t, workflow.Actions)
	assert.Equal(t, models.StateFailedComplete, workflow.Actions[0].ActionState)

	exec.count = 2
	workflow = driver.Deploy(context.Background(), workflow)
	assert.Len(t, workflow.Completed, 2)
	assert.Equal(t, "0x2", workflow.Completed["DataUri"].Contract.Address)
	assert.Equal(t, "0x2", workflow.Completed["Metadata"].Contract.Address)
	require.NotEmpty(t, workflow.Actions)
	assert.Equal(t, models.StateFailedCompile, workflow.Actions[0].ActionState)

	exec.count = 3
	workflow = driver.Deploy(context.Background(), workflow)
	assert.Len(t, workflow.Completed, 2)
	require.NotEmpty(t, workflow.Actions)
	assert.Equal(t, "3", workflow.Actions[0].Contract.DesignID)
	assert.Equal(t, models.StateFailedComplete, workflow.Actions[0].ActionState)

	exec.count = 4
	workflow = driver.Deploy(context.Background(), workflow)
	assert.Empty(t, workflow.Actions)
	assert.Len(t, workflow.Completed, 4)
	assert.Equal(t, "3", workflow.Completed["MyNft"].Contract.DesignID)
	assert.Equal(t, "0x4", workflow.Completed["MyNft"].Contract.Address)
	assert.Equal(t, models.StateCompleted, workflow.Completed["MyNft"].ActionState)
	assert.Equal(t, "4", workflow.Completed[models.ProxyContractName].Contract.DesignID)
	assert.Equal(t, "0x4", workflow.Completed[models.ProxyContractName].Contract.Address)
	assert.Equal(t, models.StateCompleted, workflow.Completed[models.ProxyContractName].ActionState)
}

func TestSummarizeAndRequireProgress(t *testing.T) {
	workflow := goldenWorkflow()
	status := Summarize(workflow)
	assert.Equal(t, 0, status.Completed)
	assert.Equal(t, 4, status.Pending)
	assert.Equal(t, "DataUri", status.HeadContract)

	assert.NoError(t, RequireProgress(workflow))

	workflow.Actions[0].ActionState = models.StateInvalid
	err := RequireProgress(workflow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkflowStalled)
}
