// File: internal/cli/vault.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// NewVaultCmd creates the 'vault' command group.
func NewVaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "List or delete saved sourcing sessions",
	}
	cmd.AddCommand(newVaultListCmd())
	cmd.AddCommand(newVaultDeleteCmd())
	return cmd
}

func newVaultListCmd() *cobra.Command {
	var owner string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved sessions, newest first",
		Example: `  vendornexus vault list
  vendornexus vault ls --owner alice --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				svc, err := a.vaultService()
				if err != nil {
					return err
				}
				sessions, err := svc.List(cmd.Context(), owner)
				if err != nil {
					return err
				}
				return printSessions(cmd.OutOrStdout(), sessions, jsonOutput)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Vault owner (empty for the anonymous vault)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newVaultDeleteCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:     "delete <session-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				svc, err := a.vaultService()
				if err != nil {
					return err
				}
				remaining, err := svc.Delete(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s (%d sessions left)\n", args[0], len(remaining))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Vault owner (empty for the anonymous vault)")
	return cmd
}

func printSessions(out io.Writer, sessions []domain.VaultSession, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No saved sessions.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tVENDORS\tMESSAGES\tSAVED")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", s.ID, s.Title, len(s.Vendors), len(s.Messages), s.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
