package pdf

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	itemHeightEstimate = 20
	baseHeightEstimate = 200
	pageBreakThreshold = 400
)

var (
	headerBlue = &props.Color{Red: 68, Green: 114, Blue: 196}
	totalBlue  = &props.Color{Red: 0, Green: 102, Blue: 204}
	copyTint   = &props.Color{Red: 255, Green: 230, Blue: 230}
	copyMark   = &props.Color{Red: 220, Green: 120, Blue: 120}
	white      = &props.Color{Red: 255, Green: 255, Blue: 255}
	grey       = &props.Color{Red: 128, Green: 128, Blue: 128}
)

// NeedsPageBreak reports whether the copy of a receipt with n items has to
// start on a new page.
func NeedsPageBreak(n int) bool {
	return n*itemHeightEstimate+baseHeightEstimate > pageBreakThreshold
}

// Render lays out doc and returns the PDF bytes.
func Render(doc Document) ([]byte, error) {
	m := maroto.New(config.NewBuilder().
		WithLeftMargin(12).
		WithTopMargin(10).
		WithRightMargin(12).
		Build())

	switch doc.Layout {
	case LayoutInvoice:
		m.AddRows(invoiceRows(doc)...)
	default:
		m.AddRows(receiptRows(doc, false)...)
		copyRows := receiptRows(doc, true)
		if NeedsPageBreak(len(doc.Items)) {
			m.AddPages(page.New().Add(copyRows...))
		} else {
			m.AddRows(row.New(8).Add(line.NewCol(12)))
			m.AddRows(copyRows...)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func receiptRows(doc Document, isCopy bool) []core.Row {
	var rows []core.Row

	if isCopy {
		rows = append(rows, row.New(10).Add(
			text.NewCol(12, "SALINAN", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center, Color: copyMark}),
		))
	}

	city := "Surabaya"
	if doc.Contact != nil && doc.Contact.City != "" {
		city = doc.Contact.City
	}
	rows = append(rows,
		row.New(10).Add(
			text.NewCol(7, doc.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.NewCol(5, city+", "+FormatDateLong(doc.Date), props.Text{Size: 10, Align: align.Right}),
		),
		row.New(6).Add(
			text.NewCol(2, "Kepada Yth:", props.Text{Size: 10}),
			text.NewCol(10, doc.Recipient, props.Text{Size: 10, Style: fontstyle.Bold}),
		),
	)
	for _, l := range WrapText(doc.Address, AddressWrapWidth) {
		rows = append(rows, row.New(5).Add(
			col.New(2),
			text.NewCol(10, l, props.Text{Size: 9}),
		))
	}
	rows = append(rows, row.New(8).Add(
		text.NewCol(12, "NOTA / INVOICE : "+doc.ReceiptNumber, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
	))

	header := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Color: white, Top: 1}
	rows = append(rows, row.New(7).Add(
		text.NewCol(1, "NO", header),
		text.NewCol(2, "BANYAKNYA", header),
		text.NewCol(2, "JENIS BARANG", header),
		text.NewCol(1, "UKURAN", header),
		text.NewCol(2, "WARNA", header),
		text.NewCol(2, "HARGA SATUAN", header),
		text.NewCol(2, "JUMLAH HARGA", header),
	).WithStyle(&props.Cell{BackgroundColor: headerBlue}))

	cell := props.Text{Size: 9, Align: align.Center, Top: 1}
	money := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}
	for i, item := range doc.Items {
		rows = append(rows, row.New(6).Add(
			text.NewCol(1, fmt.Sprintf("%d", i+1), cell),
			text.NewCol(2, item.Quantity, cell),
			text.NewCol(2, item.ItemType, cell),
			text.NewCol(1, item.Size, cell),
			text.NewCol(2, item.Color, cell),
			text.NewCol(2, item.UnitPrice, money),
			text.NewCol(2, item.Total, money),
		))
	}
	rows = append(rows, row.New(3).Add(line.NewCol(12)))

	for _, t := range doc.Totals {
		style := props.Text{Size: 9, Align: align.Right}
		if t.Emphasis {
			style.Style = fontstyle.Bold
			style.Color = totalBlue
		}
		rows = append(rows, row.New(5).Add(
			col.New(6),
			text.NewCol(3, t.Label, style),
			text.NewCol(3, t.Value, style),
		))
	}

	rows = append(rows,
		row.New(8).Add(
			text.NewCol(6, "Tanda Tangan,", props.Text{Size: 10, Align: align.Center, Top: 4}),
			text.NewCol(6, "Hormat Kami,", props.Text{Size: 10, Align: align.Center, Top: 4}),
		),
		row.New(14),
		row.New(6).Add(
			text.NewCol(6, "(....................)", props.Text{Size: 10, Align: align.Center}),
			text.NewCol(6, doc.CompanyName, props.Text{Size: 10, Align: align.Center}),
		),
		issuedRow(doc),
	)

	if isCopy {
		for i := range rows {
			rows[i] = rows[i].WithStyle(&props.Cell{BackgroundColor: copyTint})
		}
	}
	return rows
}

func invoiceRows(doc Document) []core.Row {
	var rows []core.Row

	if doc.LogoPath != "" && fileExists(doc.LogoPath) {
		rows = append(rows, row.New(25).Add(
			image.NewFromFileCol(3, doc.LogoPath, props.Rect{Percent: 90}),
			col.New(9),
		))
	}

	rows = append(rows,
		row.New(12).Add(
			text.NewCol(12, doc.CompanyName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}),
		),
		row.New(8).Add(
			text.NewCol(12, "INVOICE", props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}),
		),
		row.New(6).Add(
			text.NewCol(3, "DATE", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(9, ": "+FormatDateShort(doc.Date), props.Text{Size: 10}),
		),
		row.New(6).Add(
			text.NewCol(3, "NO. INVOICE", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(9, ": "+doc.ReceiptNumber, props.Text{Size: 10}),
		),
		row.New(6).Add(
			text.NewCol(3, "BILL TO", props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(9, ": "+doc.Recipient, props.Text{Size: 10}),
		),
	)
	for _, l := range WrapText(doc.Address, AddressWrapWidth) {
		rows = append(rows, row.New(5).Add(
			col.New(3),
			text.NewCol(9, "  "+l, props.Text{Size: 9}),
		))
	}

	header := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Color: white, Top: 1}
	rows = append(rows,
		row.New(4),
		row.New(7).Add(
			text.NewCol(1, "NO.", header),
			text.NewCol(5, "DESKRIPSI", header),
			text.NewCol(2, "HARGA (Rp)", header),
			text.NewCol(2, "QTY", header),
			text.NewCol(2, "JUMLAH", header),
		).WithStyle(&props.Cell{BackgroundColor: headerBlue}),
	)

	cell := props.Text{Size: 9, Top: 1, Left: 1}
	money := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}
	for i, item := range doc.Items {
		rows = append(rows, row.New(6).Add(
			text.NewCol(1, fmt.Sprintf("%d", i+1), props.Text{Size: 9, Align: align.Center, Top: 1}),
			text.NewCol(5, item.Description(), cell),
			text.NewCol(2, item.UnitPrice, money),
			text.NewCol(2, item.Quantity, props.Text{Size: 9, Align: align.Center, Top: 1}),
			text.NewCol(2, item.Total, money),
		))
	}
	rows = append(rows, row.New(3).Add(line.NewCol(12)))

	for _, t := range doc.Totals {
		style := props.Text{Size: 10, Align: align.Right}
		if t.Emphasis {
			style.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			text.NewCol(3, t.Label, style),
			text.NewCol(3, t.Value, style),
		))
	}

	if doc.AmountInWords != "" {
		rows = append(rows, row.New(10).Add(
			text.NewCol(12, "TERBILANG: "+doc.AmountInWords+" RUPIAH", props.Text{Size: 9, Style: fontstyle.BoldItalic, Top: 3}),
		))
	}

	if c := doc.Contact; c != nil {
		rows = append(rows,
			row.New(6).Add(text.NewCol(12, "Telepon: "+c.Phone, props.Text{Size: 9, Top: 2})),
			row.New(5).Add(text.NewCol(12, c.Address, props.Text{Size: 9})),
			row.New(6).Add(text.NewCol(12, "PAYMENT METHOD", props.Text{Size: 9, Style: fontstyle.Bold, Top: 2})),
			row.New(5).Add(text.NewCol(12, c.BankName+" "+c.BankAccount, props.Text{Size: 9})),
		)
	}

	rows = append(rows,
		row.New(10).Add(
			col.New(8),
			text.NewCol(4, "Hormat Kami,", props.Text{Size: 10, Align: align.Center, Top: 4}),
		),
		row.New(16),
		row.New(6).Add(
			col.New(8),
			text.NewCol(4, doc.CompanyName, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		),
		issuedRow(doc),
	)
	return rows
}

func issuedRow(doc Document) core.Row {
	label := "Dicetak " + doc.RenderedAt.Format("02/01/2006 15:04")
	if doc.IssuedBy != "" {
		label = "Dicetak oleh " + doc.IssuedBy + ", " + doc.RenderedAt.Format("02/01/2006 15:04")
	}
	return row.New(6).Add(
		text.NewCol(12, label, props.Text{Size: 7, Align: align.Right, Color: grey, Top: 2}),
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
