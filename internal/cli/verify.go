package cli

import (
	"fmt"

	"github.com/rentchain/rentdeploy/internal/cli/render"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var migration string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that recorded deployments exist on-chain",
		Long: `Check every deployment recorded for the selected network and report the ones
without contract code at their address, e.g. after a local node was restarted.`,
		Example: `  rentdeploy verify --network anvil`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.VerifyDeployments.Run(cmd.Context(), usecase.VerifyDeploymentsParams{
				Migration: migration,
			})
			if err != nil {
				return err
			}

			if err := render.NewDeploymentsRenderer(cmd.OutOrStdout(), !a.Config.NonInteractive).RenderVerifyResult(result); err != nil {
				return err
			}
			if result.Missing > 0 {
				return fmt.Errorf("%d deployment(s) missing on %s", result.Missing, result.Network)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&migration, "migration", "", "Only check deployments of this migration")

	return cmd
}
