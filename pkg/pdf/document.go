// Package pdf lays out receipts and invoices as A4 PDF documents.
package pdf

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layout selects the page template.
type Layout int

const (
	// LayoutReceipt prints the original and a marked copy on the same sheet.
	LayoutReceipt Layout = iota
	// LayoutInvoice prints a single tax invoice with the amount in words.
	LayoutInvoice
)

// AddressWrapWidth is the greedy wrap width, in characters, for address lines.
const AddressWrapWidth = 60

// Document is the printable view of one saved receipt. All amounts are
// already formatted.
type Document struct {
	Layout        Layout
	CompanyName   string
	LogoPath      string
	ReceiptNumber string
	Date          time.Time
	Recipient     string
	Address       string
	Items         []Item
	Totals        []TotalLine
	AmountInWords string
	Contact       *Contact
	IssuedBy      string
	RenderedAt    time.Time
}

// Item is one table row.
type Item struct {
	Quantity  string
	ItemType  string
	Size      string
	Color     string
	UnitPrice string
	Total     string
}

// Description joins type, color and size the way the invoice table shows them.
func (i Item) Description() string {
	parts := []string{i.ItemType}
	if i.Color != "" {
		parts = append(parts, i.Color)
	}
	if i.Size != "" && i.Size != "-" {
		parts = append(parts, i.Size)
	}
	return strings.Join(parts, " ")
}

// TotalLine is one label/value pair of the totals block.
type TotalLine struct {
	Label    string
	Value    string
	Emphasis bool
}

// Contact is the issuer's footer block on invoices.
type Contact struct {
	City        string
	Address     string
	Phone       string
	BankName    string
	BankAccount string
}

// WrapText greedily breaks text into lines of at most width characters.
// Words longer than width get a line of their own.
func WrapText(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			if len(current)+1+len(w) > width {
				lines = append(lines, current)
				current = w
				continue
			}
			current += " " + w
		}
		lines = append(lines, current)
	}
	return lines
}

// FormatAmount renders a whole-rupiah amount with comma thousands separators.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatRupiah is FormatAmount with the "Rp" prefix.
func FormatRupiah(d decimal.Decimal) string {
	return "Rp " + FormatAmount(d)
}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDateLong renders a date as "19 Oktober 2026".
func FormatDateLong(t time.Time) string {
	return t.Format("02") + " " + months[t.Month()-1] + " " + t.Format("2006")
}

// FormatDateShort renders a date as "19/10/2026".
func FormatDateShort(t time.Time) string {
	return t.Format("02/01/2006")
}
