package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every receipt to a workbook and empty the store",
		Long: `Write every receipt and item to exported_data_<timestamp>.xlsx in the
export directory, then delete them from the store. Pass --yes to confirm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				if !confirm {
					stats, err := a.receipts.Stats(cmd.Context())
					if err != nil {
						return err
					}
					return WrapExitError(ExitCommandError, fmt.Sprintf(
						"export would delete %d receipts and %d items; rerun with --yes", stats.ReceiptsCount, stats.ItemsCount), nil)
				}

				result, err := a.exports.ExportAndPurge(cmd.Context())
				if err != nil {
					return err
				}
				path, err := a.exports.Path(result.Filename)
				if err != nil {
					return err
				}
				if out.JSON() {
					return out.Encode(map[string]interface{}{
						"message":  result.Message(),
						"filename": result.Filename,
						"path":     path,
						"receipts": result.Receipts,
						"items":    result.Items,
					})
				}
				out.Printf("%s", result.Message())
				out.Printf("Workbook: %s", path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "confirm deleting the exported records")

	return cmd
}
