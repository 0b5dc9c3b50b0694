package request

import (
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/shopspring/decimal"
)

// ItemRequest is one line item of a receipt form
type ItemRequest struct {
	Quantity  string          `json:"quantity"`
	ItemType  string          `json:"item_type"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PricingRequest is the part of the form the pricing engine reads
type PricingRequest struct {
	CompanyCode string        `json:"company_code"`
	Items       []ItemRequest `json:"items"`
	Discount    string        `json:"discount"`
	DownPayment string        `json:"down_payment"`
}

// CreateReceiptRequest represents a receipt submission
type CreateReceiptRequest struct {
	PricingRequest
	ReceiptNumber string `json:"receipt_number"`
	Date          string `json:"date"`
	Recipient     string `json:"recipient"`
	Address       string `json:"address"`
}

// ListReceiptsQuery filters the history
type ListReceiptsQuery struct {
	Company string `form:"company"`
	Search  string `form:"search"`
	Date    string `form:"date"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// Drafts converts the items for the pricing engine
func (r *PricingRequest) Drafts() []service.ItemDraft {
	drafts := make([]service.ItemDraft, len(r.Items))
	for i, it := range r.Items {
		drafts[i] = service.ItemDraft{
			Quantity:  it.Quantity,
			ItemType:  it.ItemType,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: it.UnitPrice,
		}
	}
	return drafts
}

// FormInput converts the request for a preview
func (r *PricingRequest) FormInput() service.FormInput {
	return service.FormInput{
		CompanyCode: r.CompanyCode,
		Items:       r.Drafts(),
		Discount:    r.Discount,
		DownPayment: r.DownPayment,
	}
}
