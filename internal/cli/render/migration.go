package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MigrationRenderer renders a migration run as it happens
type MigrationRenderer struct {
	out io.Writer
}

// NewMigrationRenderer creates a new migration renderer
func NewMigrationRenderer(out io.Writer) *MigrationRenderer {
	return &MigrationRenderer{out: out}
}

// GetWriter returns the io.Writer used by this renderer
func (r *MigrationRenderer) GetWriter() io.Writer {
	return r.out
}

// RenderExecutionPlan displays the ordered deploy actions
func (r *MigrationRenderer) RenderExecutionPlan(plan *models.ExecutionPlan) {
	fmt.Fprintf(r.out, "\n🎯 Migrating %s on %s\n", plan.Migration, plan.Network)

	color.New(color.Bold).Fprintf(r.out, "📋 Execution Plan:\n")
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("─", 50))

	for i, step := range plan.Steps {
		fmt.Fprintf(r.out, "%d. ", i+1)
		color.New(color.FgCyan).Fprintf(r.out, "%s", step.Action.Name)
		fmt.Fprintf(r.out, " → ")
		color.New(color.FgGreen).Fprintf(r.out, "%s", step.Action.Artifact)
		if len(step.DependsOn) > 0 {
			color.New(color.FgHiBlack).Fprintf(r.out, " (depends on: %s)", strings.Join(step.DependsOn, ", "))
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out)
}

// RenderResumed notes which run is being resumed
func (r *MigrationRenderer) RenderResumed(state *models.RunState) {
	color.New(color.FgYellow).Fprintf(r.out, "↻ Resuming run %s (%d action(s) already deployed)\n",
		state.RunID, len(state.Addresses))
}

// RenderStepHeader shows the step being started
func (r *MigrationRenderer) RenderStepHeader(step *usecase.StepStarting) {
	color.New(color.Bold).Fprintf(r.out, "[%d/%d] %s", step.Current, step.Total, step.Name)
	color.New(color.FgHiBlack).Fprintf(r.out, " (%s)\n", step.Artifact)
}

// RenderStepSkipped shows a step reused from a previous run
func (r *MigrationRenderer) RenderStepSkipped(current, total int, stepResult *usecase.StepResult) {
	color.New(color.FgHiBlack).Fprintf(r.out, "[%d/%d] %s ⊘ already deployed at %s\n",
		current, total, stepResult.Step.Action.Name, stepResult.Receipt.Address)
}

// RenderStepResult renders a single step result
func (r *MigrationRenderer) RenderStepResult(stepResult *usecase.StepResult, dryRun bool) {
	if stepResult.Error != nil {
		color.New(color.FgRed).Fprintf(r.out, "❌ Failed: %v\n", stepResult.Error)
		return
	}

	if len(stepResult.Args) > 0 {
		fmt.Fprintf(r.out, "  Args: %s\n", strings.Join(stepResult.Args, ", "))
	}

	receipt := stepResult.Receipt
	if dryRun {
		color.New(color.FgYellow).Fprintf(r.out, "  ✓ Would deploy at %s\n", receipt.Address)
		return
	}

	color.New(color.FgGreen).Fprintf(r.out, "  ✓ Deployed at %s\n", receipt.Address)
	if receipt.TxHash != "" {
		color.New(color.FgHiBlack).Fprintf(r.out, "    tx %s (block %d)\n", receipt.TxHash, receipt.BlockNumber)
	}
}

// RenderMigrationResult renders the final summary
func (r *MigrationRenderer) RenderMigrationResult(result *usecase.MigrationResult) error {
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("═", 70))

	total := len(result.Plan.Steps)

	if result.Success {
		if result.DryRun {
			color.New(color.FgYellow, color.Bold).Fprintf(r.out,
				"Dry run of %s finished, nothing was broadcast\n", result.Plan.Migration)
		} else {
			color.New(color.FgGreen, color.Bold).Fprintf(r.out,
				"🎉 Successfully migrated %s on %s\n", result.Plan.Migration, result.Network.Name)
		}
	} else {
		color.New(color.FgRed, color.Bold).Fprintf(r.out, "❌ Migration failed\n")
	}

	fmt.Fprintf(r.out, "\n📊 Summary:\n")
	fmt.Fprintf(r.out, "  • Run: %s\n", result.RunID)
	fmt.Fprintf(r.out, "  • Status: %s\n", statusTitle(result))

	completed := len(result.ExecutedSteps)
	if result.FailedStep != nil {
		completed--
		fmt.Fprintf(r.out, "  • Failed at step: %s\n", result.FailedStep.Step.Action.Name)
	}
	fmt.Fprintf(r.out, "  • Steps completed: %d/%d\n", completed, total)

	txs := make(map[string]string)
	for _, sr := range result.ExecutedSteps {
		if sr.Receipt != nil && sr.Receipt.TxHash != "" {
			txs[sr.Step.Action.Name] = sr.Receipt.TxHash
		}
	}

	if len(result.Addresses) > 0 {
		fmt.Fprintf(r.out, "\n📍 Addresses:\n")
		for _, step := range result.Plan.Steps {
			if addr, ok := result.Addresses[step.Action.Name]; ok {
				fmt.Fprintf(r.out, "  • %-16s %s\n", step.Action.Name, addr)
				if link := explorerLink(result, "address", addr); link != "" {
					color.New(color.FgHiBlack).Fprintf(r.out, "    %s\n", link)
				}
				if tx := txs[step.Action.Name]; tx != "" {
					if link := explorerLink(result, "tx", tx); link != "" {
						color.New(color.FgHiBlack).Fprintf(r.out, "    %s\n", link)
					}
				}
			}
		}
	}

	if !result.Success && !result.DryRun {
		fmt.Fprintln(r.out)
		color.New(color.FgHiBlack).Fprintf(r.out, "Fix the problem and rerun with --resume to keep the contracts already deployed.\n")
	}

	return nil
}

// explorerLink builds a block explorer URL for an address or tx, empty for dry runs
// and networks without an explorer
func explorerLink(result *usecase.MigrationResult, kind, id string) string {
	if result.DryRun || result.Network == nil || result.Network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(result.Network.ExplorerURL, "/"), kind, id)
}

func statusTitle(result *usecase.MigrationResult) string {
	status := models.RunStatusCompleted
	if !result.Success {
		status = models.RunStatusFailed
	}
	title := cases.Title(language.English).String(string(status))
	if result.DryRun {
		title += " (dry run)"
	}
	return title
}
