package enum

import "encoding/json"

// DocumentTemplate is the printable layout used for a company's documents.
type DocumentTemplate int

const (
	// DocumentTemplateReceipt is the two-copy nota with a discount and down payment breakdown.
	DocumentTemplateReceipt DocumentTemplate = 0
	// DocumentTemplateInvoice is the single-copy tax invoice with amount in words.
	DocumentTemplateInvoice DocumentTemplate = 1
)

func (t DocumentTemplate) String() string {
	switch t {
	case DocumentTemplateInvoice:
		return "Invoice"
	default:
		return "Receipt"
	}
}

func (t DocumentTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
