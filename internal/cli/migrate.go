package cli

import (
	"errors"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [migration]",
		Short: "Deploy the contracts of a migration",
		Long: `Run the deploy actions of a migration, in order, against the selected network.

Each contract is deployed only after the previous one is confirmed on-chain. The
first failure stops the run; contracts deployed before it stay recorded, and
--resume continues from the failed action on the next run.`,
		Example: `  # Deploy the sample lease to a local anvil node
  rentdeploy migrate lease --network anvil

  # Predict addresses without sending transactions
  rentdeploy migrate oracle-rolling-rent --network sepolia --dry-run

  # Continue a failed run
  rentdeploy migrate oracle-rolling-rent --network sepolia --resume`,
		Args: cobra.MaximumNArgs(1),
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

			result, err := a.RunMigration.Run(cmd.Context(), usecase.RunMigrationParams{
				MigrationRef: ref,
				Network:      network,
				DryRun:       a.Config.DryRun,
				Resume:       a.Config.Resume,
				Build:        a.Config.Build,
				Yes:          a.Config.Yes,
			})
			if errors.Is(err, domain.ErrAborted) {
				cmd.Println("Aborted, nothing was deployed")
				return nil
			}
			if result != nil {
				if renderErr := a.MigrationRenderer.RenderMigrationResult(result); renderErr != nil {
					return renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Predict addresses without broadcasting")
	cmd.Flags().Bool("resume", false, "Skip actions deployed by the last failed run")
	cmd.Flags().BoolP("yes", "y", false, "Broadcast without asking for confirmation")
	cmd.Flags().Bool("build", false, "Compile contracts before loading artifacts")

	return cmd
}
