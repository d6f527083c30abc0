package cli

import (
	"context"
	"fmt"

	"github.com/rentchain/rentdeploy/internal/app"
	"github.com/rentchain/rentdeploy/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsApp reports whether a command runs without project configuration
func skipsApp(name string) bool {
	switch name {
	case "version", "help", "completion", "__complete":
		return true
	}
	return false
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	releaseTimeout := func() {}

	rootCmd := &cobra.Command{
		Use:   "rentdeploy",
		Short: "Deploy rent contracts by running declarative migrations",
		Long: `rentdeploy deploys Lease, RollingRent, USDOracle and other compiled contracts
by running the ordered deploy actions of a migration file against a network.

Constructor arguments come from literals, per-network parameters, addresses of
contracts deployed earlier in the same migration, or timestamps computed at the
moment each contract is deployed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd.Name()) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				releaseTimeout = cancel
			}

			cmd.SetContext(ctx)
			return nil
		},
		// Not reached when RunE fails; Execute cancels the parent context for that case
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			releaseTimeout()
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from rentdeploy.toml (e.g. anvil, sepolia)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	migrateCmd := NewMigrateCmd()
	migrateCmd.GroupID = "main"
	rootCmd.AddCommand(migrateCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "management"
	rootCmd.AddCommand(verifyCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "management"
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command. Every context derived for the command, including
// its timeout, is cancelled when Execute returns, whether or not the command failed.
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// resolveMigrationRef returns the migration named on the command line, or asks
// the user to pick one
func resolveMigrationRef(cmd *cobra.Command, a *app.App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	names, err := a.Migrations.List(cmd.Context())
	if err != nil {
		return "", err
	}
	return a.Selector.SelectMigration(cmd.Context(), names)
}
