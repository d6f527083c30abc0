package progress

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestMigrationProgressRendersEvents(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	p := NewMigrationProgress(render.NewMigrationRenderer(&out), &config.RuntimeConfig{NonInteractive: true})
	ctx := context.Background()

	oracle := &models.DeployAction{Name: "oracle", Artifact: "USDOracle"}
	rent := &models.DeployAction{Name: "rent", Artifact: "RollingRent", Args: []*models.ArgSpec{models.Ref("oracle")}}
	plan := &models.ExecutionPlan{
		Migration: "oracle-rolling-rent",
		Network:   "anvil",
		Steps: []*models.ExecutionStep{
			{Index: 0, Action: oracle},
			{Index: 1, Action: rent, DependsOn: []string{"oracle"}},
		},
	}

	p.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StagePlanCreated, Metadata: plan})
	// Rendered once
	p.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StagePlanCreated, Metadata: plan})

	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage:    usecase.StageStepStarting,
		Spinner:  true,
		Metadata: &usecase.StepStarting{Name: "oracle", Artifact: "USDOracle", Current: 1, Total: 2},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageStepCompleted,
		Metadata: &usecase.StepResult{
			Step:    plan.Steps[0],
			Receipt: &models.DeployReceipt{Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3", TxHash: "0xabc", BlockNumber: 1},
		},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageStepCompleted,
		Metadata: &usecase.StepResult{
			Step:  plan.Steps[1],
			Error: &domain.DeployError{Action: "rent", Artifact: "RollingRent", Err: errors.New("execution reverted")},
		},
	})

	s := out.String()
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Execution Plan")))
	assert.Contains(t, s, "2. rent → RollingRent (depends on: oracle)")
	assert.Contains(t, s, "[1/2] oracle (USDOracle)")
	assert.Contains(t, s, "Deployed at 0x5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Contains(t, s, "Failed: deploy rent (RollingRent): execution reverted")
}
