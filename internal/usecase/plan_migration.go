package usecase

import (
	"context"
	"fmt"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// PlanMigration loads a migration, validates it and checks it against the
// compiled artifacts without sending any transaction
type PlanMigration struct {
	migrations MigrationRepository
	artifacts  ArtifactRepository
	encoder    ArgumentEncoder
	networks   NetworkResolver
	builder    ArtifactBuilder
	clock      Clock
}

// NewPlanMigration creates a new plan migration use case
func NewPlanMigration(
	migrations MigrationRepository,
	artifacts ArtifactRepository,
	encoder ArgumentEncoder,
	networks NetworkResolver,
	builder ArtifactBuilder,
	clock Clock,
) *PlanMigration {
	return &PlanMigration{
		migrations: migrations,
		artifacts:  artifacts,
		encoder:    encoder,
		networks:   networks,
		builder:    builder,
		clock:      clock,
	}
}

// PlanMigrationParams contains parameters for planning
type PlanMigrationParams struct {
	MigrationRef string
	Network      string
	Build        bool // Compile contracts before loading artifacts
}

// PlanResult is a validated plan plus everything needed to execute it
type PlanResult struct {
	Migration *models.Migration
	Plan      *models.ExecutionPlan
	Network   *config.Network
	Params    map[string]string
	Artifacts map[string]*models.Artifact
	// Preview holds the resolved arguments per action, with refs as placeholders
	// and timestamps computed from the current time
	Preview map[string][]string
}

// Run builds and checks the execution plan
func (uc *PlanMigration) Run(ctx context.Context, params PlanMigrationParams) (*PlanResult, error) {
	if params.Network == "" {
		return nil, fmt.Errorf("network is required (use --network)")
	}

	network, err := uc.networks.ResolveNetwork(ctx, params.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}

	migration, err := uc.migrations.Load(ctx, params.MigrationRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load migration: %w", err)
	}

	plan, err := models.BuildPlan(migration, network.Name)
	if err != nil {
		return nil, err
	}

	if params.Build && uc.builder != nil {
		if err := uc.builder.Build(ctx); err != nil {
			return nil, fmt.Errorf("failed to build contracts: %w", err)
		}
	}

	var networkParams map[string]string
	if np, ok := migration.Networks[network.Name]; ok && np != nil {
		networkParams = np.Params
	}

	result := &PlanResult{
		Migration: migration,
		Plan:      plan,
		Network:   network,
		Params:    networkParams,
		Artifacts: make(map[string]*models.Artifact),
		Preview:   make(map[string][]string),
	}

	resolver := &argResolver{params: networkParams, placeholders: true}
	now := uc.clock.Now()

	for _, step := range plan.Steps {
		action := step.Action

		artifact, ok := result.Artifacts[action.Artifact]
		if !ok {
			artifact, err = uc.artifacts.GetArtifact(ctx, action.Artifact)
			if err != nil {
				return nil, fmt.Errorf("action '%s': %w", action.Name, err)
			}
			result.Artifacts[action.Artifact] = artifact
		}

		inputs := artifact.ConstructorInputs()
		if len(inputs) != len(action.Args) {
			return nil, fmt.Errorf("%w: action '%s': %s constructor takes %d argument(s), %d given",
				domain.ErrInvalidPlan, action.Name, artifact.Name, len(inputs), len(action.Args))
		}

		values, err := resolver.resolve(action, now)
		if err != nil {
			return nil, fmt.Errorf("action '%s': %w", action.Name, err)
		}
		if _, err := uc.encoder.Encode(inputs, values); err != nil {
			return nil, fmt.Errorf("action '%s': %w", action.Name, err)
		}
		result.Preview[action.Name] = values
	}

	return result, nil
}
