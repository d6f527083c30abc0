package cli

import (
	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter rentdeploy.toml and sample migrations",
		Long: `Write rentdeploy.toml, .env.example and sample migrations for the Lease,
USDOracle + RollingRent and RollingRent deployments. Existing files are kept
unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.InitProject.Run(cmd.Context(), usecase.InitProjectParams{Force: force})
			if err != nil {
				return err
			}

			return render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}
