package app

import (
	"context"
	"log/slog"

	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	PlanMigration     *usecase.PlanMigration
	RunMigration      *usecase.RunMigration
	ListDeployments   *usecase.ListDeployments
	VerifyDeployments *usecase.VerifyDeployments
	ListNetworks      *usecase.ListNetworks
	InitProject       *usecase.InitProject

	// Shared dependencies
	Migrations usecase.MigrationRepository
	Selector   MigrationSelector

	// Renderers
	MigrationRenderer *render.MigrationRenderer
}

// MigrationSelector lets the user pick a migration when none is named
type MigrationSelector interface {
	SelectMigration(ctx context.Context, names []string) (string, error)
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	planMigration *usecase.PlanMigration,
	runMigration *usecase.RunMigration,
	listDeployments *usecase.ListDeployments,
	verifyDeployments *usecase.VerifyDeployments,
	listNetworks *usecase.ListNetworks,
	initProject *usecase.InitProject,
	migrations usecase.MigrationRepository,
	selector MigrationSelector,
	migrationRenderer *render.MigrationRenderer,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		PlanMigration:     planMigration,
		RunMigration:      runMigration,
		ListDeployments:   listDeployments,
		VerifyDeployments: verifyDeployments,
		ListNetworks:      listNetworks,
		InitProject:       initProject,
		Migrations:        migrations,
		Selector:          selector,
		MigrationRenderer: migrationRenderer,
	}, nil
}
