package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// RunStateStore keeps one state file per migration and network under <data dir>/runs
type RunStateStore struct {
	dir string
}

// NewRunStateStore creates a new run state store
func NewRunStateStore(cfg *config.RuntimeConfig) *RunStateStore {
	return &RunStateStore{dir: filepath.Join(cfg.DataDir, RunsDir)}
}

func (s *RunStateStore) statePath(migration, network string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", migration, network))
}

// Load reads the last run state, returning domain.ErrNotFound if there is none
func (s *RunStateStore) Load(_ context.Context, migration, network string) (*models.RunState, error) {
	data, err := os.ReadFile(s.statePath(migration, network))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read run state: %w", err)
	}

	var state models.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse run state: %w", err)
	}
	return &state, nil
}

// Save writes the run state, replacing the previous one
func (s *RunStateStore) Save(_ context.Context, state *models.RunState) error {
	return writeJSON(s.statePath(state.Migration, state.Network), state)
}

// Ensure the adapter implements the interface
var _ usecase.RunStateRepository = (*RunStateStore)(nil)
