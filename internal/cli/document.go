package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewPDFCommand creates the pdf command.
func NewPDFCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	var regenerate bool
	var issuedBy string

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Write the PDF of a receipt",
		Long: `Write the PDF of a receipt. The cached nota_<number>.pdf is used when it
exists; --regenerate renders it again from the store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				if regenerate {
					if _, err := a.documents.Regenerate(cmd.Context(), id, issuedBy); err != nil {
						return err
					}
				}
				doc, err := a.documents.Load(cmd.Context(), id, issuedBy)
				if err != nil {
					return err
				}

				path := doc.Path
				if output != "" {
					if err := os.WriteFile(output, doc.Data, 0o644); err != nil {
						return err
					}
					path = output
				}

				if out.JSON() {
					return out.Encode(map[string]interface{}{"filename": doc.Filename, "path": path, "bytes": len(doc.Data)})
				}
				out.Printf("%s", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "copy the PDF to this path")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "render the PDF again")
	cmd.Flags().StringVar(&issuedBy, "issued-by", "", "issuer name when rendering")

	return cmd
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print <id>",
		Short: "Send the PDF of a receipt to the configured printer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				doc, err := a.documents.Print(cmd.Context(), id, "")
				if err != nil {
					return err
				}
				status := a.documents.PrinterStatus(cmd.Context())
				if out.JSON() {
					return out.Encode(map[string]interface{}{"filename": doc.Filename, "printer": status})
				}
				out.Printf("Sent %s to %s printer %s", doc.Filename, status.Type, status.Target)
				return nil
			})
		},
	}
}
