// File: internal/cli/export.go
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/services/export"
)

// NewExportCmd creates the 'export' command.
func NewExportCmd() *cobra.Command {
	var (
		owner  string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a saved session's vendors to CSV or PDF",
		Args:  cobra.ExactArgs(1),
		Example: `  vendornexus export 1718000000000
  vendornexus export 1718000000000 --format csv -o vendors.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pdf" && format != "csv" {
				return fmt.Errorf("unsupported format %q (want pdf or csv)", format)
			}
			return withApp(func(a *app) error {
				svc, err := a.vaultService()
				if err != nil {
					return err
				}
				session, err := svc.Get(cmd.Context(), owner, args[0])
				if err != nil {
					return fmt.Errorf("session %s: %w", args[0], err)
				}
				if len(session.Vendors) == 0 {
					return fmt.Errorf("session %s has no vendors to export", args[0])
				}

				if output == "" {
					output = export.PDFFileName
					if format == "csv" {
						output = export.CSVFileName
					}
				}
				if err := writeExportFile(output, format, session.Vendors, time.Now()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d vendors to %s\n", len(session.Vendors), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Vault owner (empty for the anonymous vault)")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format: pdf or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the report file name)")
	return cmd
}

func writeExportFile(path, format string, vendors []domain.Vendor, at time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return writeExport(f, format, vendors, at)
}

func writeExport(w io.Writer, format string, vendors []domain.Vendor, at time.Time) error {
	if format == "csv" {
		return export.WriteCSV(w, vendors)
	}
	return export.WritePDF(w, vendors, at)
}
