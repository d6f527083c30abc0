package cli

import (
	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		migration string
		artifact  string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from the registry",
		Long: `List the contracts recorded in .rentdeploy/deployments.json.

The list can be filtered by network, migration or artifact.`,
		Example: `  # List all deployments
  rentdeploy list

  # List Lease deployments on sepolia
  rentdeploy list --network sepolia --artifact Lease`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				Migration: migration,
				Artifact:  artifact,
			}
			if a.Config.Network != nil {
				params.Network = a.Config.Network.Name
			}

			result, err := a.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), !noColor && !a.Config.NonInteractive)
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&migration, "migration", "", "Filter by migration name")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Filter by artifact name")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
