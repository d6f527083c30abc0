package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// MigrationRepository loads migration definitions
type MigrationRepository interface {
	// Load resolves a migration by file path or by name inside the migrations directory
	Load(ctx context.Context, ref string) (*models.Migration, error)
	// List returns the names of all known migrations
	List(ctx context.Context) ([]string, error)
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	ListArtifacts(ctx context.Context) ([]string, error)
}

// ArgumentEncoder converts resolved argument strings into values the ABI packer accepts
type ArgumentEncoder interface {
	Encode(inputs abi.Arguments, values []string) ([]any, error)
}

// DeployRequest is a single contract creation
type DeployRequest struct {
	Artifact *models.Artifact
	Args     []any
}

// ContractDeployer is the deployer capability: create a contract and wait until it
// is confirmed, returning its address.
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*models.DeployReceipt, error)
}

// DeploymentRepository handles persistence of deployments
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
}

// CodeChecker checks on-chain state of the selected network
type CodeChecker interface {
	HasCode(ctx context.Context, address string) (bool, error)
}

// RunStateRepository persists run progress for resume
type RunStateRepository interface {
	Load(ctx context.Context, migration, network string) (*models.RunState, error)
	Save(ctx context.Context, state *models.RunState) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Confirmer asks the user to approve an irreversible action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ArtifactBuilder compiles contracts before artifacts are loaded
type ArtifactBuilder interface {
	Build(ctx context.Context) error
}

// Clock is the source of wall-clock time for timestamp arguments
type Clock interface {
	Now() time.Time
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages emitted by RunMigration
const (
	StagePlanCreated        = "plan_created"
	StageStepStarting       = "step_starting"
	StageStepSkipped        = "step_skipped"
	StageStepCompleted      = "step_completed"
	StageMigrationResumed   = "migration_resumed"
	StageMigrationCompleted = "migration_completed"
)

// FileWriter handles file system operations for project initialization
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// StarterTemplates provides the files written by `init`, keyed by path relative to the project root
type StarterTemplates interface {
	Files(ctx context.Context) (map[string][]byte, error)
}
