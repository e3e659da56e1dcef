package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simbachain/libsimba-deploy/internal/domain"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	workflow := &models.Workflow{
		AppName: "myApp",
		Org:     "MyOrg",
		Actions: []*models.Action{{ActionType: models.ActionDeployLibrary, ContractName: "SafeMath"}},
		Completed: map[string]*models.Action{
			"Token": {ContractName: "Token", Contract: &models.Contract{Address: "0xtoken"}},
		},
	}

	require.NoError(t, store.Save(context.Background(), "plan1", workflow))

	loaded, err := store.Load(context.Background(), "plan1")
	require.NoError(t, err)
	assert.Equal(t, "myApp", loaded.AppName)
	assert.Len(t, loaded.Actions, 1)
	assert.Equal(t, "0xtoken", loaded.Completed["Token"].Contract.Address)
}

func TestFileStore_LoadMissingReturnsErrNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFileStore_LoadNilCompletedInitialized(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	workflow := &models.Workflow{AppName: "myApp"}
	require.NoError(t, store.Save(context.Background(), "plan2", workflow))

	loaded, err := store.Load(context.Background(), "plan2")
	require.NoError(t, err)
	assert.NotNil(t, loaded.Completed)
}

func TestFileStore_CreatesStateDirectory(t *testing.T) {
	root := t.TempDir()
	_, err := NewFileStore(root)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(root, StateDir))
}
