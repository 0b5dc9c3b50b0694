package cli

import (
	"strconv"

	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/pkg/pdf"
	"github.com/spf13/cobra"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	Company string
	Search  string
	Date    string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved receipts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				list, err := a.receipts.List(cmd.Context(), &service.ListReceiptsInput{
					CompanyCode: opts.Company,
					Search:      opts.Search,
					Date:        opts.Date,
				})
				if err != nil {
					return err
				}
				if out.JSON() {
					return out.Encode(list)
				}
				if len(list.Receipts) == 0 {
					out.Printf("No receipts found")
					return nil
				}
				rows := make([][]string, len(list.Receipts))
				for i, r := range list.Receipts {
					rows[i] = []string{
						strconv.FormatUint(uint64(r.ID), 10),
						r.ReceiptNumber,
						r.IssueDate.Format(entity.DateLayout),
						r.CompanyCode,
						r.Recipient,
						pdf.FormatRupiah(r.TotalAmount),
					}
				}
				return out.Table([]string{"ID", "NUMBER", "DATE", "COMPANY", "RECIPIENT", "TOTAL"}, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Company, "company", "c", "", "only this company code")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "match receipt number, recipient or company name")
	cmd.Flags().StringVar(&opts.Date, "date", "", "only this issue date (YYYY-MM-DD)")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one receipt with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				receipt, err := a.receipts.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if out.JSON() {
					return out.Encode(receipt)
				}

				out.Printf("%s  %s", receipt.ReceiptNumber, receipt.CompanyName)
				out.Printf("Date:      %s", receipt.IssueDate.Format(entity.DateLayout))
				out.Printf("Recipient: %s", receipt.Recipient)
				if receipt.Address != "" {
					out.Printf("Address:   %s", receipt.Address)
				}
				out.Printf("")

				rows := make([][]string, len(receipt.Items))
				for i, it := range receipt.Items {
					rows[i] = []string{it.Quantity, it.ItemType, it.Size, it.Color, pdf.FormatRupiah(it.UnitPrice), pdf.FormatRupiah(it.TotalPrice)}
				}
				if err := out.Table([]string{"QTY", "ITEM", "SIZE", "COLOR", "PRICE", "TOTAL"}, rows); err != nil {
					return err
				}
				out.Printf("")
				for _, line := range totalsLines(service.Totals(receipt)) {
					out.Printf("  %-22s %s", line[0], line[1])
				}
				return nil
			})
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, WrapExitError(ExitCommandError, "invalid receipt id "+strconv.Quote(raw), nil)
	}
	return uint(id), nil
}
