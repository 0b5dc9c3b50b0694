package cli

import (
	"strconv"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/spf13/cobra"
)

// NewNextNumberCommand creates the next-number command.
func NewNextNumberCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number <company>",
		Short: "Print the next free receipt number of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				number := a.receipts.NextNumber(cmd.Context(), args[0])
				if out.JSON() {
					return out.Encode(map[string]string{"receipt_number": number})
				}
				if number == "" {
					return WrapExitError(ExitFailure, "no receipt number available for "+strconv.Quote(args[0]), nil)
				}
				out.Printf("%s", number)
				return nil
			})
		},
	}
}

// NewRecipientsCommand creates the recipients command.
func NewRecipientsCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recipients [query]",
		Short: "List previously used recipients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				names, err := a.receipts.Recipients(cmd.Context(), query, limit)
				if err != nil {
					return err
				}
				if out.JSON() {
					return out.Encode(map[string][]string{"recipients": names})
				}
				for _, n := range names {
					out.Printf("%s", n)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of names")

	return cmd
}

// NewCompaniesCommand creates the companies command.
func NewCompaniesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List the issuing companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			companies := entity.Companies()
			if out.JSON() {
				return out.Encode(map[string]interface{}{"companies": companies})
			}
			rows := make([][]string, len(companies))
			for i, c := range companies {
				rows[i] = []string{c.Code, c.Name, c.Policy.String(), c.Template.String()}
			}
			return out.Table([]string{"CODE", "NAME", "PRICING", "TEMPLATE"}, rows)
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how full the store is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				stats, err := a.receipts.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if out.JSON() {
					return out.Encode(stats)
				}
				out.Printf("Receipts: %d / %d", stats.ReceiptsCount, stats.ExportThreshold)
				out.Printf("Items:    %d", stats.ItemsCount)
				if stats.ApproachingLimit {
					out.Printf("The store is nearly full; run `nota export --yes` soon.")
				}
				return nil
			})
		},
	}
}
