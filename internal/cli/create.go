package cli

import (
	"fmt"
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/pkg/pdf"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// CreateOptions holds flags for the new command.
type CreateOptions struct {
	Company     string
	Number      string
	Date        string
	Recipient   string
	Address     string
	Items       []string
	Discount    string
	DownPayment string
	IssuedBy    string
}

// NewCreateCommand creates the new command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Save a receipt and render its PDF",
		Long: `Save a receipt and render nota_<number>.pdf into the documents directory.

Each --item is "quantity|type|size|color|unit price", for example
--item "2 lbr|Terpal Biru|4x6|Biru|10000". The size may be left empty
for anything that is not a tarpaulin. The receipt number is assigned
automatically when --number is omitted.`,
		Example: `  nota new --company CR --recipient "Budi Santoso" --item "2|Terpal|4x6|Biru|10000"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := parseItems(opts.Items)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --item", err)
			}
			return rootOpts.run(cmd, func(a *app, out *OutputFormatter) error {
				return runCreate(cmd, a, out, opts, drafts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Company, "company", "c", "", "company code (CH, CR, CP)")
	cmd.Flags().StringVarP(&opts.Number, "number", "n", "", "receipt number (default: next free number)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "issue date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&opts.Recipient, "recipient", "r", "", "recipient name")
	cmd.Flags().StringVar(&opts.Address, "address", "", "recipient address")
	cmd.Flags().StringArrayVarP(&opts.Items, "item", "i", nil, `line item "quantity|type|size|color|price" (repeatable)`)
	cmd.Flags().StringVar(&opts.Discount, "discount", "", `discount amount or percentage such as "10%"`)
	cmd.Flags().StringVar(&opts.DownPayment, "dp", "", "down payment amount")
	cmd.Flags().StringVar(&opts.IssuedBy, "issued-by", "", "name printed as the issuer")

	return cmd
}

func runCreate(cmd *cobra.Command, a *app, out *OutputFormatter, opts *CreateOptions, drafts []service.ItemDraft) error {
	result, err := a.receipts.Create(cmd.Context(), &service.CreateReceiptInput{
		CompanyCode:   opts.Company,
		ReceiptNumber: opts.Number,
		Date:          opts.Date,
		Recipient:     opts.Recipient,
		Address:       opts.Address,
		Items:         drafts,
		Discount:      opts.Discount,
		DownPayment:   opts.DownPayment,
		IssuedBy:      opts.IssuedBy,
	})
	if err != nil {
		return err
	}

	if out.JSON() {
		return out.Encode(map[string]interface{}{
			"receipt_id":     result.Receipt.ID,
			"receipt_number": result.Receipt.ReceiptNumber,
			"total_amount":   result.Receipt.TotalAmount.InexactFloat64(),
			"document":       result.Document,
		})
	}

	out.Printf("Saved %s for %s (%s)", result.Receipt.ReceiptNumber, result.Receipt.Recipient, result.Receipt.CompanyName)
	for _, line := range totalsLines(result.Totals) {
		out.Printf("  %-22s %s", line[0], line[1])
	}
	if result.Document != "" {
		out.Printf("Document: %s", result.Document)
	}
	return nil
}

// parseItems reads the pipe-separated --item values.
func parseItems(values []string) ([]service.ItemDraft, error) {
	drafts := make([]service.ItemDraft, 0, len(values))
	for i, v := range values {
		parts := strings.Split(v, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("item %d: want 5 fields separated by '|', got %d", i+1, len(parts))
		}
		price := decimal.Zero
		if raw := strings.TrimSpace(parts[4]); raw != "" {
			p, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				return nil, fmt.Errorf("item %d: invalid price %q", i+1, raw)
			}
			price = p
		}
		drafts = append(drafts, service.ItemDraft{
			Quantity:  parts[0],
			ItemType:  parts[1],
			Size:      parts[2],
			Color:     parts[3],
			UnitPrice: price,
		})
	}
	return drafts, nil
}

// totalsLines is the label/amount summary for a priced receipt.
func totalsLines(t *service.FormOutput) [][2]string {
	if t == nil {
		return nil
	}
	if t.VAT != nil {
		return [][2]string{
			{"DPP", pdf.FormatRupiah(t.VAT.Subtotal)},
			{"PPN (11%)", pdf.FormatRupiah(t.VAT.Tax)},
			{"TOTAL", pdf.FormatRupiah(t.VAT.Total)},
		}
	}
	lines := [][2]string{{"Subtotal", pdf.FormatRupiah(t.Subtotal)}}
	if d := t.DiscountDP; d != nil {
		if d.Discount.IsPositive() {
			lines = append(lines, [2]string{"Diskon", pdf.FormatRupiah(d.Discount)})
		}
		if d.DownPayment.IsPositive() {
			lines = append(lines, [2]string{"DP", pdf.FormatRupiah(d.DownPayment)})
		}
	}
	return append(lines, [2]string{"Sisa Perlu Bayar", pdf.FormatRupiah(t.GrandTotal)})
}
