package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of a receipt's issue date.
const DateLayout = "2006-01-02"

// Receipt is a saved nota or invoice header.
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReceiptNumber string          `gorm:"size:20;uniqueIndex;not null" json:"receipt_number"`
	CompanyCode   string          `gorm:"size:2;not null;index" json:"company_code"`
	CompanyName   string          `gorm:"size:255;not null" json:"company_name"`
	IssueDate     time.Time       `gorm:"column:date;type:date;not null;index" json:"-"`
	Recipient     string          `gorm:"size:255;not null;index" json:"recipient"`
	Address       string          `gorm:"type:text" json:"address"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	Tax           decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	Discount      decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	DownPayment   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	DiscountInput string          `gorm:"size:50" json:"discount_input,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	IssuedBy      string          `gorm:"size:255" json:"issued_by,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	// Relationships
	Items []LineItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// MarshalJSON renders amounts as plain numbers and the issue date as YYYY-MM-DD.
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Date        string  `json:"date"`
		Subtotal    float64 `json:"subtotal"`
		Tax         float64 `json:"tax"`
		Discount    float64 `json:"discount"`
		DownPayment float64 `json:"down_payment"`
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(r),
		Date:        r.IssueDate.Format(DateLayout),
		Subtotal:    r.Subtotal.InexactFloat64(),
		Tax:         r.Tax.InexactFloat64(),
		Discount:    r.Discount.InexactFloat64(),
		DownPayment: r.DownPayment.InexactFloat64(),
		TotalAmount: r.TotalAmount.InexactFloat64(),
	})
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// LineItem is one row of a receipt. Quantity, Size and Color keep the text
// the user typed; QuantityCount and SizeArea are the values priced from it.
type LineItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReceiptID     uint            `gorm:"not null;index" json:"receipt_id"`
	Quantity      string          `gorm:"size:100;not null" json:"quantity"`
	ItemType      string          `gorm:"size:255;not null" json:"item_type"`
	Size          string          `gorm:"size:50;not null" json:"size"`
	Color         string          `gorm:"size:100;not null" json:"color"`
	QuantityCount int             `gorm:"not null" json:"quantity_count"`
	SizeArea      decimal.Decimal `gorm:"type:numeric(15,4);not null" json:"-"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"-"`
}

// MarshalJSON renders amounts as plain numbers.
func (li LineItem) MarshalJSON() ([]byte, error) {
	type Alias LineItem
	return json.Marshal(&struct {
		Alias
		SizeArea   float64 `json:"size_area"`
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(li),
		SizeArea:   li.SizeArea.InexactFloat64(),
		UnitPrice:  li.UnitPrice.InexactFloat64(),
		TotalPrice: li.TotalPrice.InexactFloat64(),
	})
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "items"
}
