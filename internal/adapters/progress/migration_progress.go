package progress

import (
	"context"

	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// MigrationProgress renders migration progress events as they arrive
type MigrationProgress struct {
	renderer *render.MigrationRenderer
	spinner  *SpinnerProgressReporter
	dryRun   bool
	quiet    bool // no spinner in non-interactive mode

	planRendered bool
}

// NewMigrationProgress creates a new migration progress reporter
func NewMigrationProgress(renderer *render.MigrationRenderer, cfg *config.RuntimeConfig) *MigrationProgress {
	return &MigrationProgress{
		renderer: renderer,
		spinner:  NewSpinnerProgressReporter(),
		dryRun:   cfg.DryRun,
		quiet:    cfg.NonInteractive,
	}
}

// OnProgress handles progress events of a migration run
func (p *MigrationProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageMigrationResumed:
		if state, ok := event.Metadata.(*models.RunState); ok {
			p.renderer.RenderResumed(state)
		}

	case usecase.StagePlanCreated:
		if plan, ok := event.Metadata.(*models.ExecutionPlan); ok && !p.planRendered {
			p.renderer.RenderExecutionPlan(plan)
			p.planRendered = true
		}

	case usecase.StageStepSkipped:
		if stepResult, ok := event.Metadata.(*usecase.StepResult); ok {
			p.renderer.RenderStepSkipped(event.Current, event.Total, stepResult)
		}

	case usecase.StageStepStarting:
		if step, ok := event.Metadata.(*usecase.StepStarting); ok {
			p.spinner.Stop()
			p.renderer.RenderStepHeader(step)
		}
		if event.Spinner && !p.quiet {
			p.spinner.OnProgress(ctx, event)
		}

	case usecase.StageStepCompleted:
		p.spinner.Stop()
		if stepResult, ok := event.Metadata.(*usecase.StepResult); ok {
			p.renderer.RenderStepResult(stepResult, p.dryRun)
		}

	case usecase.StageMigrationCompleted:
		// Final summary is rendered by the CLI command after this returns
		p.spinner.Stop()

	default:
		if !p.quiet {
			p.spinner.OnProgress(ctx, event)
		}
	}
}

// Info forwards info messages to the spinner
func (p *MigrationProgress) Info(message string) {
	p.spinner.Info(message)
}

// Error forwards error messages to the spinner
func (p *MigrationProgress) Error(message string) {
	p.spinner.Error(message)
}

// Ensure MigrationProgress implements ProgressSink
var _ usecase.ProgressSink = (*MigrationProgress)(nil)
