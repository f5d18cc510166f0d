package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the 'version' command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version, commit hash, and build date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout())
		},
	}
}

func runVersion(out io.Writer) error {
	fmt.Fprintf(out, "Version:  %s\n", Version)
	fmt.Fprintf(out, "Commit:   %s\n", Commit)
	fmt.Fprintf(out, "Built:    %s\n", Date)
	return nil
}
