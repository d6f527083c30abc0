package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// PlanRenderer renders a validated plan without deploying it
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// RenderPlan shows each action with its argument sources and preview values
func (r *PlanRenderer) RenderPlan(result *usecase.PlanResult) error {
	plan := result.Plan

	color.New(color.Bold).Fprintf(r.out, "Migration %s", plan.Migration)
	if result.Migration.Description != "" {
		fmt.Fprintf(r.out, " - %s", result.Migration.Description)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Network:   %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	if result.Migration.Source != "" {
		fmt.Fprintf(r.out, "Source:    %s\n", result.Migration.Source)
	}
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Action", "Artifact", "Argument", "Source", "Value"})

	for i, step := range plan.Steps {
		action := step.Action
		artifact := result.Artifacts[action.Artifact]
		preview := result.Preview[action.Name]

		if len(action.Args) == 0 {
			t.AppendRow(table.Row{i + 1, action.Name, action.Artifact, "-", "", ""})
			continue
		}

		inputs := artifact.ConstructorInputs()
		for j, arg := range action.Args {
			name := fmt.Sprintf("%d", j)
			if j < len(inputs) {
				name = fmt.Sprintf("%s %s", inputs[j].Type.String(), inputs[j].Name)
			}
			value := ""
			if j < len(preview) {
				value = preview[j]
			}
			source := arg.String()
			if dep, ok := plan.Step(arg.Ref); ok && arg.Ref != "" {
				source = fmt.Sprintf("%s (#%d)", source, dep.Index+1)
			}
			if j == 0 {
				t.AppendRow(table.Row{i + 1, action.Name, action.Artifact, strings.TrimSpace(name), source, value})
			} else {
				t.AppendRow(table.Row{"", "", "", strings.TrimSpace(name), source, value})
			}
		}
		if i < len(plan.Steps)-1 {
			t.AppendSeparator()
		}
	}

	fmt.Fprintln(r.out, t.Render())
	color.New(color.FgHiBlack).Fprintln(r.out, "@refs show a placeholder address until the referenced action is deployed; timestamps are recomputed at deploy time.")
	return nil
}
