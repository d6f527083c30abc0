//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/rentchain/rentdeploy/internal/adapters"
	"github.com/rentchain/rentdeploy/internal/adapters/interactive"
	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/config"
	"github.com/rentchain/rentdeploy/internal/logging"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, out io.Writer) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,
		wire.Bind(new(MigrationSelector), new(*interactive.PromptAdapter)),

		// Renderers
		render.NewMigrationRenderer,

		// Use cases
		usecase.NewPlanMigration,
		usecase.NewRunMigration,
		usecase.NewListDeployments,
		usecase.NewVerifyDeployments,
		usecase.NewListNetworks,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil
}
