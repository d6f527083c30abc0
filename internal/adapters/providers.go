package adapters

import (
	"github.com/google/wire"
	"github.com/rentchain/rentdeploy/internal/adapters/abi"
	"github.com/rentchain/rentdeploy/internal/adapters/artifacts"
	"github.com/rentchain/rentdeploy/internal/adapters/blockchain"
	"github.com/rentchain/rentdeploy/internal/adapters/clock"
	"github.com/rentchain/rentdeploy/internal/adapters/deployer"
	"github.com/rentchain/rentdeploy/internal/adapters/forge"
	"github.com/rentchain/rentdeploy/internal/adapters/fs"
	"github.com/rentchain/rentdeploy/internal/adapters/interactive"
	"github.com/rentchain/rentdeploy/internal/adapters/progress"
	"github.com/rentchain/rentdeploy/internal/adapters/template"
	"github.com/rentchain/rentdeploy/internal/config"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStore,
	wire.Bind(new(usecase.DeploymentRepository), new(*fs.DeploymentStore)),

	fs.NewRunStateStore,
	wire.Bind(new(usecase.RunStateRepository), new(*fs.RunStateStore)),

	fs.NewMigrationRepository,
	wire.Bind(new(usecase.MigrationRepository), new(*fs.MigrationRepository)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),
)

// ContractSet provides artifact loading and argument encoding
var ContractSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	abi.NewEncoderAdapter,
	wire.Bind(new(usecase.ArgumentEncoder), new(*abi.EncoderAdapter)),
)

// ForgeSet provides the contract compiler
var ForgeSet = wire.NewSet(
	forge.NewBuilderAdapter,
	wire.Bind(new(usecase.ArtifactBuilder), new(*forge.BuilderAdapter)),
)

// BlockchainSet provides chain access and the deployer capability
var BlockchainSet = wire.NewSet(
	blockchain.NewClientProvider,
	wire.Bind(new(deployer.ClientSource), new(*blockchain.ClientProvider)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.CodeChecker), new(*blockchain.CheckerAdapter)),

	deployer.NewEthDeployer,
	deployer.NewDryRunDeployer,
	deployer.ProvideDeployer,
)

// TemplateSet provides the starter project files
var TemplateSet = wire.NewSet(
	template.NewStarterTemplatesAdapter,
	wire.Bind(new(usecase.StarterTemplates), new(*template.StarterTemplatesAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPromptAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.PromptAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// ProgressSet provides the migration progress reporter
var ProgressSet = wire.NewSet(
	progress.NewMigrationProgress,
	wire.Bind(new(usecase.ProgressSink), new(*progress.MigrationProgress)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	clock.NewSystemClock,
	wire.Bind(new(usecase.Clock), new(clock.SystemClock)),

	FSSet,
	ContractSet,
	ForgeSet,
	BlockchainSet,
	TemplateSet,
	InteractiveSet,
	ConfigSet,
	ProgressSet,
)
