package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// RunMigration executes the deploy actions of a migration in order
type RunMigration struct {
	planner     *PlanMigration
	deployer    ContractDeployer
	encoder     ArgumentEncoder
	deployments DeploymentRepository
	runStates   RunStateRepository
	confirmer   Confirmer
	clock       Clock
	progress    ProgressSink
	log         *slog.Logger
}

// NewRunMigration creates a new run migration use case
func NewRunMigration(
	planner *PlanMigration,
	deployer ContractDeployer,
	encoder ArgumentEncoder,
	deployments DeploymentRepository,
	runStates RunStateRepository,
	confirmer Confirmer,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *RunMigration {
	return &RunMigration{
		planner:     planner,
		deployer:    deployer,
		encoder:     encoder,
		deployments: deployments,
		runStates:   runStates,
		confirmer:   confirmer,
		clock:       clock,
		progress:    progress,
		log:         log,
	}
}

// RunMigrationParams contains parameters for a migration run
type RunMigrationParams struct {
	MigrationRef string
	Network      string
	DryRun       bool
	Resume       bool // Skip actions deployed by the last failed run
	Build        bool
	Yes          bool // Broadcast without asking
}

// MigrationResult contains the result of a migration run
type MigrationResult struct {
	RunID         string
	Plan          *models.ExecutionPlan
	Network       *config.Network
	ExecutedSteps []*StepResult
	FailedStep    *StepResult
	Success       bool
	DryRun        bool
	Addresses     map[string]string
}

// StepResult contains the result of executing a single step
type StepResult struct {
	Step       *models.ExecutionStep
	Args       []string
	Receipt    *models.DeployReceipt
	Deployment *models.Deployment
	Skipped    bool
	Error      error
}

// StepStarting is the metadata of a step_starting event
type StepStarting struct {
	Name     string
	Artifact string
	Current  int
	Total    int
}

// Run executes the migration. Deployments happen strictly one after the other; each
// waits for confirmation before the next one starts. The first failure aborts the run
// and is returned as a *domain.DeployError alongside the partial result.
func (uc *RunMigration) Run(ctx context.Context, params RunMigrationParams) (*MigrationResult, error) {
	planned, err := uc.planner.Run(ctx, PlanMigrationParams{
		MigrationRef: params.MigrationRef,
		Network:      params.Network,
		Build:        params.Build,
	})
	if err != nil {
		return nil, err
	}
	plan := planned.Plan

	state, err := uc.initState(ctx, planned, params)
	if err != nil {
		return nil, err
	}

	if !params.DryRun && !params.Yes && !planned.Network.IsLocal() {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %d contract(s) from '%s' to %s (chain %d)?",
			len(plan.Steps), plan.Migration, planned.Network.Name, planned.Network.ChainID))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StagePlanCreated,
		Metadata: plan,
	})

	result := &MigrationResult{
		RunID:         state.RunID,
		Plan:          plan,
		Network:       planned.Network,
		ExecutedSteps: make([]*StepResult, 0, len(plan.Steps)),
		Success:       true,
		DryRun:        params.DryRun,
		Addresses:     make(map[string]string),
	}

	resolver := &argResolver{params: planned.Params, addresses: result.Addresses}

	for i, step := range plan.Steps {
		action := step.Action

		if addr, ok := state.Addresses[action.Name]; ok && params.Resume {
			result.Addresses[action.Name] = addr
			stepResult := &StepResult{Step: step, Skipped: true, Receipt: &models.DeployReceipt{Address: addr}}
			result.ExecutedSteps = append(result.ExecutedSteps, stepResult)
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:    StageStepSkipped,
				Current:  i + 1,
				Total:    len(plan.Steps),
				Metadata: stepResult,
			})
			continue
		}

		state.CurrentStep = i
		state.Status = models.RunStatusRunning
		uc.saveState(ctx, state, params.DryRun)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageStepStarting,
			Current: i + 1,
			Total:   len(plan.Steps),
			Spinner: true,
			Message: fmt.Sprintf("Deploying %s (%s)", action.Name, action.Artifact),
			Metadata: &StepStarting{
				Name:     action.Name,
				Artifact: action.Artifact,
				Current:  i + 1,
				Total:    len(plan.Steps),
			},
		})

		stepResult := uc.executeStep(ctx, step, planned.Artifacts[action.Artifact], resolver)
		result.ExecutedSteps = append(result.ExecutedSteps, stepResult)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageStepCompleted,
			Current:  i + 1,
			Total:    len(plan.Steps),
			Metadata: stepResult,
		})

		if stepResult.Error != nil {
			result.FailedStep = stepResult
			result.Success = false
			state.Status = models.RunStatusFailed
			state.Error = stepResult.Error.Error()
			uc.saveState(ctx, state, params.DryRun)
			break
		}

		addr := stepResult.Receipt.Address
		result.Addresses[action.Name] = addr
		state.Addresses[action.Name] = addr

		stepResult.Deployment = &models.Deployment{
			ID:          models.DeploymentID(planned.Network.Name, plan.Migration, action.Name),
			RunID:       state.RunID,
			Migration:   plan.Migration,
			Network:     planned.Network.Name,
			ChainID:     planned.Network.ChainID,
			Action:      action.Name,
			Artifact:    action.Artifact,
			Address:     addr,
			TxHash:      stepResult.Receipt.TxHash,
			BlockNumber: stepResult.Receipt.BlockNumber,
			Deployer:    stepResult.Receipt.Deployer,
			Args:        stepResult.Args,
			DryRun:      params.DryRun,
			CreatedAt:   uc.clock.Now(),
		}

		if !params.DryRun {
			if err := uc.deployments.SaveDeployment(ctx, stepResult.Deployment); err != nil {
				uc.log.Warn("failed to record deployment", "action", action.Name, "address", addr, "error", err)
			}
		}
		uc.saveState(ctx, state, params.DryRun)
	}

	if result.Success {
		state.Status = models.RunStatusCompleted
		state.CurrentStep = len(plan.Steps)
		state.Error = ""
		uc.saveState(ctx, state, params.DryRun)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageMigrationCompleted,
		Metadata: result,
	})

	if result.FailedStep != nil {
		return result, result.FailedStep.Error
	}
	return result, nil
}

// executeStep resolves the arguments of one action, deploys it and waits for the receipt
func (uc *RunMigration) executeStep(ctx context.Context, step *models.ExecutionStep, artifact *models.Artifact, resolver *argResolver) *StepResult {
	action := step.Action
	stepResult := &StepResult{Step: step}

	fail := func(err error) *StepResult {
		stepResult.Error = &domain.DeployError{Action: action.Name, Artifact: action.Artifact, Err: err}
		return stepResult
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	// Timestamps are read here, immediately before the deploy call
	now := uc.clock.Now()
	values, err := resolver.resolve(action, now)
	if err != nil {
		return fail(err)
	}
	stepResult.Args = values

	args, err := uc.encoder.Encode(artifact.ConstructorInputs(), values)
	if err != nil {
		return fail(err)
	}

	uc.log.Debug("deploying", "action", action.Name, "artifact", action.Artifact, "args", values)

	receipt, err := uc.deployer.Deploy(ctx, DeployRequest{Artifact: artifact, Args: args})
	if err != nil {
		return fail(err)
	}
	stepResult.Receipt = receipt

	if hasTimestamp(action) && !receipt.BlockTime.IsZero() {
		uc.checkTimestampLead(action, values, receipt)
	}

	return stepResult
}

// checkTimestampLead warns when a timestamp argument was already in the past by the
// time the creation transaction was mined
func (uc *RunMigration) checkTimestampLead(action *models.DeployAction, values []string, receipt *models.DeployReceipt) {
	mined := receipt.BlockTime.Unix()
	for i, arg := range action.Args {
		if arg.Timestamp == "" {
			continue
		}
		ts, err := strconv.ParseInt(values[i], 10, 64)
		if err != nil {
			continue
		}
		if ts <= mined {
			uc.log.Warn("timestamp argument was already reached when the deployment was mined",
				"action", action.Name, "argument", i, "timestamp", ts, "block_time", mined)
		}
	}
}

// initState starts a new run state, or loads the previous one when resuming
func (uc *RunMigration) initState(ctx context.Context, planned *PlanResult, params RunMigrationParams) (*models.RunState, error) {
	plan := planned.Plan

	if params.Resume {
		prev, err := uc.runStates.Load(ctx, plan.Migration, plan.Network)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("no previous run of '%s' on %s to resume", plan.Migration, plan.Network)
			}
			return nil, fmt.Errorf("failed to resume: %w", err)
		}
		if prev.Status == models.RunStatusCompleted {
			return nil, fmt.Errorf("cannot resume '%s' on %s: %w", plan.Migration, plan.Network, domain.ErrRunCompleted)
		}
		if prev.Source != planned.Migration.Source {
			return nil, fmt.Errorf("cannot resume: migration file changed (was %s, now %s)", prev.Source, planned.Migration.Source)
		}
		if prev.Addresses == nil {
			prev.Addresses = make(map[string]string)
		}

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageMigrationResumed,
			Current:  prev.CurrentStep,
			Total:    len(plan.Steps),
			Metadata: prev,
		})
		return prev, nil
	}

	now := uc.clock.Now()
	return &models.RunState{
		RunID:     uuid.NewString(),
		Migration: plan.Migration,
		Network:   plan.Network,
		Source:    planned.Migration.Source,
		StartedAt: now,
		UpdatedAt: now,
		Status:    models.RunStatusRunning,
		Addresses: make(map[string]string),
	}, nil
}

// saveState persists run progress; failures are logged and never abort the run
func (uc *RunMigration) saveState(ctx context.Context, state *models.RunState, dryRun bool) {
	if dryRun {
		return
	}
	state.UpdatedAt = uc.clock.Now()
	if err := uc.runStates.Save(ctx, state); err != nil {
		uc.log.Warn("failed to save run state", "migration", state.Migration, "error", err)
	}
}
