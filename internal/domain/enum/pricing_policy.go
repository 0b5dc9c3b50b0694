package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PricingPolicy selects how a receipt's totals are derived from its subtotal.
type PricingPolicy int

const (
	PricingPolicyDiscountDP PricingPolicy = 0
	PricingPolicyVAT        PricingPolicy = 1
)

func (p PricingPolicy) String() string {
	names := [...]string{"DiscountDP", "VAT"}
	if int(p) < 0 || int(p) >= len(names) {
		return "DiscountDP"
	}
	return names[p]
}

func (p PricingPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PricingPolicy) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PricingPolicy(i)
		return nil
	}
	switch str {
	case "VAT":
		*p = PricingPolicyVAT
	default:
		*p = PricingPolicyDiscountDP
	}
	return nil
}

func (p PricingPolicy) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PricingPolicy) Scan(value interface{}) error {
	if value == nil {
		*p = PricingPolicyDiscountDP
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PricingPolicy(v)
	case int:
		*p = PricingPolicy(v)
	}
	return nil
}
