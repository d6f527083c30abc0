package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

const (
	DeploymentsFile = "deployments.json"
	RunsDir         = "runs"
)

// DeploymentStore stores deployments in a JSON file under the data directory
type DeploymentStore struct {
	path string

	mu          sync.RWMutex
	deployments map[string]*models.Deployment
	loaded      bool
}

// NewDeploymentStore creates a new deployment store
func NewDeploymentStore(cfg *config.RuntimeConfig) *DeploymentStore {
	return &DeploymentStore{
		path:        filepath.Join(cfg.DataDir, DeploymentsFile),
		deployments: make(map[string]*models.Deployment),
	}
}

// load reads the registry file once; a missing file is an empty registry
func (s *DeploymentStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &s.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if s.deployments == nil {
		s.deployments = make(map[string]*models.Deployment)
	}
	s.loaded = true
	return nil
}

// GetDeployment retrieves a deployment by ID
func (s *DeploymentStore) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	dep, ok := s.deployments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *dep
	return &clone, nil
}

// ListDeployments retrieves deployments matching the filter
func (s *DeploymentStore) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	var result []*models.Deployment
	for _, dep := range s.deployments {
		if filter.Network != "" && dep.Network != filter.Network {
			continue
		}
		if filter.Migration != "" && dep.Migration != filter.Migration {
			continue
		}
		if filter.Artifact != "" && !strings.EqualFold(dep.Artifact, filter.Artifact) {
			continue
		}
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		clone := *dep
		result = append(result, &clone)
	}
	return result, nil
}

// SaveDeployment inserts or replaces a deployment and writes the registry file
func (s *DeploymentStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.ID == "" {
		return fmt.Errorf("%w: deployment has no id", domain.ErrInvalidPlan)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	clone := *deployment
	s.deployments[deployment.ID] = &clone
	return writeJSON(s.path, s.deployments)
}

// writeJSON writes v to path through a temp file and rename
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	return os.Rename(tmpPath, path)
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRepository = (*DeploymentStore)(nil)
