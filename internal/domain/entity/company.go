package entity

import (
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/domain/enum"
)

// Company is one of the issuing businesses. The registry is fixed at build time.
type Company struct {
	Code     string                `json:"code"`
	Name     string                `json:"name"`
	Policy   enum.PricingPolicy    `json:"policy"`
	Template enum.DocumentTemplate `json:"template"`
	LogoFile string                `json:"-"`
	Contact  *CompanyContact       `json:"-"`
}

// CompanyContact is printed in the invoice footer.
type CompanyContact struct {
	City        string
	Address     string
	Phone       string
	BankName    string
	BankAccount string
}

var companies = []Company{
	{
		Code:     "CH",
		Name:     "PT. CHASTE GEMILANG MANDIRI",
		Policy:   enum.PricingPolicyVAT,
		Template: enum.DocumentTemplateInvoice,
		LogoFile: "CHASTE GEMILANG MANDIRI.png",
		Contact: &CompanyContact{
			City:        "Surabaya",
			Address:     "Jl. Mulyosari Prima Utara VI/MM-16, Kalisari, Mulyorejo, Surabaya",
			Phone:       "031-5990710",
			BankName:    "BANK CENTRAL ASIA (BCA)",
			BankAccount: "5060507475",
		},
	},
	{
		Code:     "CR",
		Name:     "PT CREATIVE GLOBAL MULIA",
		Policy:   enum.PricingPolicyDiscountDP,
		Template: enum.DocumentTemplateReceipt,
	},
	{
		Code:     "CP",
		Name:     "CV. COMPAGRE",
		Policy:   enum.PricingPolicyDiscountDP,
		Template: enum.DocumentTemplateReceipt,
	},
}

// Companies returns the registry in display order.
func Companies() []Company {
	out := make([]Company, len(companies))
	copy(out, companies)
	return out
}

// LookupCompany finds a company by its two-letter code, ignoring case.
func LookupCompany(code string) (Company, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range companies {
		if c.Code == code {
			return c, true
		}
	}
	return Company{}, false
}
