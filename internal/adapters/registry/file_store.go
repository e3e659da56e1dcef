// Package registry implements usecase.WorkflowRepository as JSON files
// on disk, one per workflow name, so an interrupted run can be resumed
// by reloading the same value and calling Deploy again.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/simbachain/libsimba-deploy/internal/domain"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// StateDir is the directory, relative to the configured root, that
// holds one JSON file per workflow.
const StateDir = ".simba-deploy"

// FileStore stores workflows as JSON files under rootDir/.simba-deploy.
// A per-instance mutex serializes writes; it does not coordinate across
// process boundaries, matching the single-operator usage the engine
// assumes.
type FileStore struct {
	rootDir string
	mu      sync.Mutex
}

// NewFileStore builds a FileStore rooted at rootDir, creating its state
// directory if necessary.
func NewFileStore(rootDir string) (*FileStore, error) {
	dir := filepath.Join(rootDir, StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &FileStore{rootDir: rootDir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.rootDir, StateDir, name+".json")
}

// Load reads and decodes the workflow file named name. It returns
// domain.ErrNotFound if no such file exists.
func (s *FileStore) Load(_ context.Context, name string) (*models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading workflow %q: %w", name, err)
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("decoding workflow %q: %w", name, err)
	}
	if workflow.Completed == nil {
		workflow.Completed = map[string]*models.Action{}
	}
	return &workflow, nil
}

// Save writes workflow to name's file, via a temp file and rename so a
// crash mid-write cannot leave a truncated file behind.
func (s *FileStore) Save(_ context.Context, name string, workflow *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workflow %q: %w", name, err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing workflow %q: %w", name, err)
	}
	return os.Rename(tmp, path)
}
