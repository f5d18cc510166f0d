/*
Package cli implements the vendornexus command tree.

Every command loads configuration the same way (vendornexus.yaml, .env,
then the environment) and shares one logger and one set of stores.
*/
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vendornexus",
		Short: "Conversational vendor sourcing assistant",
		Long: `vendornexus helps buyers find suppliers. It interviews the user about
a requirement, asks an OpenAI-compatible model for vendors, and collects
the results into a deduplicated, rating-sorted list.

It runs as a Telegram bot (webhook or long polling) and serves a JSON API
for the web workspace, with saved sessions kept in a vault.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewPollCmd())
	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewVaultCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewTokenCmd())
	rootCmd.AddCommand(NewDiagnoseCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// withApp loads the shared app, runs fn and releases storage afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	runErr := fn(a)
	if err := a.close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
