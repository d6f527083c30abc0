package cli

import (
	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [migration]",
		Short: "Validate a migration and show what it would deploy",
		Long: `Load a migration, check it against the compiled artifacts and the network's
parameters, and show every action with its resolved constructor arguments.
Nothing is sent to the network.`,
		Example: `  rentdeploy plan lease --network anvil`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			ref, err := resolveMigrationRef(cmd, a, args)
			if err != nil {
				return err
			}

			network := ""
			if a.Config.Network != nil {
				network = a.Config.Network.Name
			}

			result, err := a.PlanMigration.Run(cmd.Context(), usecase.PlanMigrationParams{
				MigrationRef: ref,
				Network:      network,
				Build:        a.Config.Build,
			})
			if err != nil {
				return err
			}

			return render.NewPlanRenderer(cmd.OutOrStdout()).RenderPlan(result)
		},
	}

	cmd.Flags().Bool("build", false, "Compile contracts before loading artifacts")

	return cmd
}
