package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/enum"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SizePlaceholder is stored when an item carries no size.
const SizePlaceholder = "-"

var (
	vatRate = decimal.RequireFromString("0.11")

	parenGroupPattern = regexp.MustCompile(`\(([^)]*)\)`)
	digitsPattern     = regexp.MustCompile(`\d+`)
	sizePattern       = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*[xX]\s*(\d+(?:[.,]\d+)?)\s*$`)
)

// ParseQuantity extracts the count from free text such as "Dua (2) lbr" or
// "3 pcs". Only the first parenthesized group is considered; when it does not
// hold an integer the first digit run counts. Text without digits counts as one.
func ParseQuantity(text string) int {
	if m := parenGroupPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(m[1])); err == nil && n >= 0 {
			return n
		}
	}
	if m := digitsPattern.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 1
}

// ParseSizeArea multiplies the two sides of a "<w>X<h>" size. Anything that
// is not exactly two numbers yields an area of one.
func ParseSizeArea(text string) decimal.Decimal {
	m := sizePattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.NewFromInt(1)
	}
	w, errW := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
	h, errH := decimal.NewFromString(strings.ReplaceAll(m[2], ",", "."))
	if errW != nil || errH != nil {
		return decimal.NewFromInt(1)
	}
	return w.Mul(h)
}

// ParseAmount reads a money amount typed as e.g. "Rp 50,000". Commas are
// thousands separators. Unparseable input is zero.
func ParseAmount(text string) decimal.Decimal {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "Rp"), "rp")
	cleaned = strings.ReplaceAll(cleaned, "Rp", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDiscount resolves the discount input against the subtotal. A trailing
// "%" makes it a percentage of the subtotal, otherwise it is a literal amount.
func ParseDiscount(text string, subtotal decimal.Decimal) decimal.Decimal {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "%") {
		pct, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(trimmed, "%")))
		if err != nil {
			return decimal.Zero
		}
		return subtotal.Mul(pct).Div(decimal.NewFromInt(100))
	}
	return ParseAmount(trimmed)
}

// IsTerpal reports whether an item type is tarpaulin, which must carry a size.
func IsTerpal(itemType string) bool {
	return strings.Contains(strings.ToLower(itemType), "terpal")
}

// PolicyFor returns the pricing policy of a company code. Unknown codes get
// the discount and down payment policy.
func PolicyFor(code string) enum.PricingPolicy {
	if c, ok := entity.LookupCompany(code); ok {
		return c.Policy
	}
	return enum.PricingPolicyDiscountDP
}

// ItemDraft is a line item as entered, before pricing.
type ItemDraft struct {
	Quantity  string          `json:"quantity"`
	ItemType  string          `json:"item_type"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PricedItem is a validated draft with its computed values.
type PricedItem struct {
	ItemDraft
	QuantityCount int
	SizeArea      decimal.Decimal
	Total         decimal.Decimal
}

// LineItem converts the priced item to its storage form.
func (p PricedItem) LineItem() entity.LineItem {
	return entity.LineItem{
		Quantity:      p.Quantity,
		ItemType:      p.ItemType,
		Size:          p.Size,
		Color:         p.Color,
		QuantityCount: p.QuantityCount,
		SizeArea:      p.SizeArea,
		UnitPrice:     p.UnitPrice,
		TotalPrice:    p.Total,
	}
}

// ComputeItem validates one draft and prices it as count times area times
// unit price. Only tarpaulin items must state a size.
func ComputeItem(draft ItemDraft) (PricedItem, error) {
	return computeItem(draft, "")
}

func computeItem(draft ItemDraft, field string) (PricedItem, error) {
	d := ItemDraft{
		Quantity:  strings.TrimSpace(draft.Quantity),
		ItemType:  strings.TrimSpace(draft.ItemType),
		Size:      strings.TrimSpace(draft.Size),
		Color:     strings.TrimSpace(draft.Color),
		UnitPrice: draft.UnitPrice,
	}

	var errs []apperror.FieldError
	if d.Quantity == "" {
		errs = append(errs, apperror.FieldError{Field: field + "quantity", Message: "Quantity is required"})
	}
	if d.ItemType == "" {
		errs = append(errs, apperror.FieldError{Field: field + "item_type", Message: "Item type is required"})
	}
	if d.Color == "" {
		errs = append(errs, apperror.FieldError{Field: field + "color", Message: "Color is required"})
	}
	terpal := IsTerpal(d.ItemType)
	if terpal && (d.Size == "" || d.Size == SizePlaceholder) {
		errs = append(errs, apperror.FieldError{Field: field + "size", Message: "Size is required for Terpal items"})
	}
	if d.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: field + "unit_price", Message: "Unit price must not be negative"})
	}
	if len(errs) > 0 {
		return PricedItem{}, apperror.NewValidationError(errs)
	}

	if d.Size == "" {
		d.Size = SizePlaceholder
	}

	count := ParseQuantity(d.Quantity)
	area := ParseSizeArea(d.Size)
	total := decimal.NewFromInt(int64(count)).Mul(area).Mul(d.UnitPrice)

	return PricedItem{
		ItemDraft:     d,
		QuantityCount: count,
		SizeArea:      area,
		Total:         total,
	}, nil
}

// FormInput is everything needed to price a receipt.
type FormInput struct {
	CompanyCode string
	Items       []ItemDraft
	Discount    string
	DownPayment string
}

// VATTotals is the breakdown for VAT-registered companies.
type VATTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// DiscountTotals is the breakdown for companies that take discounts and
// down payments.
type DiscountTotals struct {
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	AfterDiscount decimal.Decimal
	DownPayment   decimal.Decimal
	RemainingDue  decimal.Decimal
}

// FormOutput is a priced receipt. Exactly one of VAT and DiscountDP is set,
// matching Policy.
type FormOutput struct {
	Company    entity.Company
	Policy     enum.PricingPolicy
	Items      []PricedItem
	Subtotal   decimal.Decimal
	VAT        *VATTotals
	DiscountDP *DiscountTotals
	GrandTotal decimal.Decimal
}

// Tax is the VAT amount, zero for the discount policy.
func (o *FormOutput) Tax() decimal.Decimal {
	if o.VAT != nil {
		return o.VAT.Tax
	}
	return decimal.Zero
}

// Discount is the resolved discount, zero for the VAT policy.
func (o *FormOutput) Discount() decimal.Decimal {
	if o.DiscountDP != nil {
		return o.DiscountDP.Discount
	}
	return decimal.Zero
}

// DownPayment is the recorded down payment, zero for the VAT policy.
func (o *FormOutput) DownPayment() decimal.Decimal {
	if o.DiscountDP != nil {
		return o.DiscountDP.DownPayment
	}
	return decimal.Zero
}

// PricingEngine prices receipts.
type PricingEngine struct{}

// NewPricingEngine creates a pricing engine
func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// Compute validates every item and derives the totals for the company's
// policy. Items are reported with their index in the error field names.
func (e *PricingEngine) Compute(input FormInput) (*FormOutput, error) {
	company, ok := entity.LookupCompany(input.CompanyCode)
	if !ok {
		return nil, apperror.NewFieldError("company", "Unknown company")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "At least one item is required")
	}

	out := &FormOutput{
		Company:  company,
		Policy:   company.Policy,
		Items:    make([]PricedItem, 0, len(input.Items)),
		Subtotal: decimal.Zero,
	}

	var errs []apperror.FieldError
	for i, draft := range input.Items {
		priced, err := computeItem(draft, fmt.Sprintf("items[%d].", i))
		if err != nil {
			errs = append(errs, apperror.GetAppError(err).Errors...)
			continue
		}
		out.Items = append(out.Items, priced)
		out.Subtotal = out.Subtotal.Add(priced.Total)
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	applyPolicy(out, ParseDiscount(input.Discount, out.Subtotal), ParseAmount(input.DownPayment))
	return out, nil
}

// Totals rebuilds the breakdown of a saved receipt from its stored amounts.
func Totals(receipt *entity.Receipt) *FormOutput {
	company, ok := entity.LookupCompany(receipt.CompanyCode)
	if !ok {
		company = entity.Company{Code: receipt.CompanyCode, Name: receipt.CompanyName, Policy: enum.PricingPolicyDiscountDP}
	}
	out := &FormOutput{
		Company:  company,
		Policy:   company.Policy,
		Subtotal: receipt.Subtotal,
	}
	for _, item := range receipt.Items {
		out.Items = append(out.Items, PricedItem{
			ItemDraft: ItemDraft{
				Quantity:  item.Quantity,
				ItemType:  item.ItemType,
				Size:      item.Size,
				Color:     item.Color,
				UnitPrice: item.UnitPrice,
			},
			QuantityCount: item.QuantityCount,
			SizeArea:      item.SizeArea,
			Total:         item.TotalPrice,
		})
	}
	applyPolicy(out, receipt.Discount, receipt.DownPayment)
	return out
}

func applyPolicy(out *FormOutput, discount, downPayment decimal.Decimal) {
	switch out.Policy {
	case enum.PricingPolicyVAT:
		tax := out.Subtotal.Mul(vatRate)
		out.VAT = &VATTotals{
			Subtotal: out.Subtotal,
			Tax:      tax,
			Total:    out.Subtotal.Add(tax),
		}
		out.GrandTotal = out.VAT.Total
	default:
		after := out.Subtotal.Sub(discount)
		out.DiscountDP = &DiscountTotals{
			Subtotal:      out.Subtotal,
			Discount:      discount,
			AfterDiscount: after,
			DownPayment:   downPayment,
			RemainingDue:  after.Sub(downPayment),
		}
		out.GrandTotal = out.DiscountDP.RemainingDue
	}
}
