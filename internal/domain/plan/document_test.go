package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbachain/libsimba-deploy/internal/domain"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

func TestParseJSON_Valid(t *testing.T) {
	data := []byte(`{
		"app_name": "myapp",
		"org": "myorg",
		"blockchain": "sepolia",
		"actions": [
			{"action_type": "DEPLOY_LIBRARY", "contract_name": "SafeMath", "code": "contract SafeMath {}"},
			{
				"action_type": "DEPLOY_CONTRACT",
				"contract_name": "Token",
				"code": "contract Token {}",
				"api_name": "Token",
				"dependencies": [
					{"dependency_type": "LIBRARY", "parent": "SafeMath"}
				]
			}
		]
	}`)

	workflow, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "myapp", workflow.AppName)
	assert.Len(t, workflow.Actions, 2)
	assert.Empty(t, workflow.Completed)
	assert.Equal(t, models.StateInited, workflow.Actions[0].ActionState)
}

func TestParseYAML_Valid(t *testing.T) {
	data := []byte(`
app_name: myapp
org: myorg
blockchain: sepolia
actions:
  - action_type: DEPLOY_LIBRARY
    contract_name: SafeMath
    code: "contract SafeMath {}"
`)
	workflow, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Len(t, workflow.Actions, 1)
}

func TestBuild_NoActions(t *testing.T) {
	_, err := Build(&Document{})
	assert.ErrorIs(t, err, domain.ErrNoActions)
}

func TestBuild_InitialActionHasDependencies(t *testing.T) {
	doc := &Document{
		Actions: []*models.Action{
			{
				ActionType:   models.ActionDeployLibrary,
				ContractName: "SafeMath",
				Code:         "contract SafeMath {}",
				Dependencies: []models.Dependency{{DependencyType: models.DependencyLibrary, Parent: "Nothing"}},
			},
		},
	}
	_, err := Build(doc)
	assert.ErrorIs(t, err, domain.ErrInitialActionHasDependencies)
}

func TestBuild_UnknownParentSuggestsClosestName(t *testing.T) {
	doc := &Document{
		Actions: []*models.Action{
			{ActionType: models.ActionDeployLibrary, ContractName: "SafeMath", Code: "c"},
			{
				ActionType:   models.ActionDeployContract,
				ContractName: "Token",
				Code:         "c",
				APIName:      "Token",
				Dependencies: []models.Dependency{{DependencyType: models.DependencyLibrary, Parent: "SafeMat"}},
			},
		},
	}
	_, err := Build(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownParent)
	assert.Contains(t, err.Error(), "did you mean")
}

func TestBuild_ProxyMissingImpl(t *testing.T) {
	doc := &Document{
		Actions: []*models.Action{
			{ActionType: models.ActionDeployLibrary, ContractName: "SafeMath", Code: "c"},
			{
				ActionType:   models.ActionDeployProxy,
				ContractName: "Proxy",
				APIName:      "Proxy",
				Dependencies: []models.Dependency{{DependencyType: models.DependencyLibrary, Parent: "SafeMath"}},
			},
		},
	}
	_, err := Build(doc)
	assert.ErrorIs(t, err, domain.ErrProxyMissingImpl)
}

func TestBuild_MissingRequiredField(t *testing.T) {
	doc := &Document{
		Actions: []*models.Action{
			{ActionType: models.ActionDeployLibrary, Code: "c"},
		},
	}
	_, err := Build(doc)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
