package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

var (
	networkHeader  = color.New(color.BgCyan, color.FgBlack, color.Bold)
	timestampStyle = color.New(color.Faint)
	dryRunStyle    = color.New(color.FgYellow)
)

// DeploymentsRenderer renders the deployment registry as tables grouped by network
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, color: color}
}

// RenderDeploymentList renders the deployments of each network in its own table
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byNetwork := make(map[string][]*models.Deployment)
	for _, dep := range result.Deployments {
		byNetwork[dep.Network] = append(byNetwork[dep.Network], dep)
	}
	networks := make([]string, 0, len(byNetwork))
	for n := range byNetwork {
		networks = append(networks, n)
	}
	sort.Strings(networks)

	for _, network := range networks {
		deps := byNetwork[network]
		header := fmt.Sprintf(" %s (chain %d) ", network, deps[0].ChainID)
		if r.color {
			header = networkHeader.Sprint(header)
		}
		fmt.Fprintln(r.out, header)

		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
		t.AppendHeader(table.Row{"Migration", "Action", "Artifact", "Address", "Deployed"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Align: text.AlignLeft},
		})

		for _, dep := range deps {
			created := dep.CreatedAt.Format("2006-01-02 15:04:05")
			if r.color {
				created = timestampStyle.Sprint(created)
			}
			address := dep.Address
			if dep.DryRun {
				address += " (dry run)"
				if r.color {
					address = dryRunStyle.Sprint(address)
				}
			}
			t.AppendRow(table.Row{dep.Migration, dep.Action, dep.Artifact, address, created})
		}

		fmt.Fprintln(r.out, t.Render())
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Total: %d deployment(s) on %d network(s)\n", result.Summary.Total, len(result.Summary.ByNetwork))
	return nil
}

// RenderVerifyResult renders the on-chain check of recorded deployments
func (r *DeploymentsRenderer) RenderVerifyResult(result *usecase.VerifyDeploymentsResult) error {
	if len(result.Checks) == 0 {
		fmt.Fprintf(r.out, "No deployments recorded on %s\n", result.Network)
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Migration", "Action", "Address", "Status"})

	for _, check := range result.Checks {
		status := r.paint(color.New(color.FgGreen), "✓ deployed")
		switch {
		case check.Error != nil:
			status = r.paint(color.New(color.FgYellow), fmt.Sprintf("? %v", check.Error))
		case !check.Exists:
			status = r.paint(color.New(color.FgRed), "✗ no code")
		}
		dep := check.Deployment
		t.AppendRow(table.Row{dep.Migration, dep.Action, dep.Address, status})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *DeploymentsRenderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}
