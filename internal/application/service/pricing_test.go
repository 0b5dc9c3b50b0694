package service

import (
	"net/http"
	"testing"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/enum"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Dua (2) lbr", 2},
		{"( 12 ) pcs", 12},
		{"3 pcs", 3},
		{"lembar 4 dan 5", 4},
		{"(x) 7", 7},
		{"(a) 3 (2)", 3},
		{"(2 lbr) (5)", 2},
		{"satu", 1},
		{"", 1},
		{"Sepuluh (10) roll 3", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseQuantity(tt.in), "ParseQuantity(%q)", tt.in)
	}
}

func TestParseSizeArea(t *testing.T) {
	assert.True(t, ParseSizeArea("4X6").Equal(dec("24")))
	assert.True(t, ParseSizeArea("4x6").Equal(dec("24")))
	assert.True(t, ParseSizeArea(" 2.5 X 3 ").Equal(dec("7.5")))
	assert.True(t, ParseSizeArea("2,5X2").Equal(dec("5")))
	assert.True(t, ParseSizeArea("4X6X2").Equal(dec("1")))
	assert.True(t, ParseSizeArea("besar").Equal(dec("1")))
	assert.True(t, ParseSizeArea("-").Equal(dec("1")))
}

func TestParseAmountAndDiscount(t *testing.T) {
	assert.True(t, ParseAmount("Rp 50,000").Equal(dec("50000")))
	assert.True(t, ParseAmount("5000").Equal(dec("5000")))
	assert.True(t, ParseAmount("lima ribu").IsZero())
	assert.True(t, ParseAmount("").IsZero())

	assert.True(t, ParseDiscount("10%", dec("100000")).Equal(dec("10000")))
	assert.True(t, ParseDiscount("12.5 %", dec("200000")).Equal(dec("25000")))
	assert.True(t, ParseDiscount("5000", dec("100000")).Equal(dec("5000")))
	assert.True(t, ParseDiscount("5000", dec("1")).Equal(dec("5000")))
	assert.True(t, ParseDiscount("abc%", dec("100000")).IsZero())
}

func TestComputeItemTerpalUsesArea(t *testing.T) {
	item, err := ComputeItem(ItemDraft{Quantity: "Dua (2) lbr", ItemType: "Terpal A5", Size: "4X6", Color: "Biru", UnitPrice: dec("10000")})
	require.NoError(t, err)

	assert.Equal(t, 2, item.QuantityCount)
	assert.True(t, item.SizeArea.Equal(dec("24")))
	assert.True(t, item.Total.Equal(dec("480000")))
}

func TestComputeItemWithoutSize(t *testing.T) {
	item, err := ComputeItem(ItemDraft{Quantity: "3", ItemType: "Baju", Color: "Merah", UnitPrice: dec("25000")})
	require.NoError(t, err)

	assert.Equal(t, SizePlaceholder, item.Size)
	assert.True(t, item.SizeArea.Equal(dec("1")))
	assert.True(t, item.Total.Equal(dec("75000")))
}

func TestComputeItemOptionalSizeStillMultiplies(t *testing.T) {
	item, err := ComputeItem(ItemDraft{Quantity: "2 roll", ItemType: "Tali", Size: "2X3", Color: "Hitam", UnitPrice: dec("500")})
	require.NoError(t, err)
	assert.True(t, item.Total.Equal(dec("6000")))
}

func TestComputeItemValidation(t *testing.T) {
	_, err := ComputeItem(ItemDraft{Quantity: "2", ItemType: "terpal", Color: "Biru", UnitPrice: dec("1000")})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "size", appErr.Errors[0].Field)

	_, err = ComputeItem(ItemDraft{Quantity: " ", ItemType: "", Color: "", UnitPrice: dec("-1")})
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 4)
}

func TestComputeVATPolicy(t *testing.T) {
	out, err := NewPricingEngine().Compute(FormInput{
		CompanyCode: "CH",
		Items: []ItemDraft{
			{Quantity: "Dua (2) lbr", ItemType: "Terpal", Size: "4X6", Color: "Biru", UnitPrice: dec("10000")},
		},
		Discount: "10%",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PricingPolicyVAT, out.Policy)
	require.NotNil(t, out.VAT)
	assert.Nil(t, out.DiscountDP)
	assert.True(t, out.Subtotal.Equal(dec("480000")))
	assert.True(t, out.VAT.Tax.Equal(dec("52800")))
	assert.True(t, out.GrandTotal.Equal(dec("532800")))
	assert.True(t, out.GrandTotal.Sub(out.Subtotal).Equal(out.Tax()))
	assert.True(t, out.Discount().IsZero(), "discount input is ignored for VAT companies")
}

func TestComputeDiscountPolicy(t *testing.T) {
	out, err := NewPricingEngine().Compute(FormInput{
		CompanyCode: "cr",
		Items: []ItemDraft{
			{Quantity: "3 pcs", ItemType: "Tali", Color: "Hitam", UnitPrice: dec("5000")},
			{Quantity: "1", ItemType: "Terpal", Size: "2X5", Color: "Biru", UnitPrice: dec("8500")},
		},
		Discount:    "10%",
		DownPayment: "Rp 20,000",
	})
	require.NoError(t, err)

	require.NotNil(t, out.DiscountDP)
	assert.Nil(t, out.VAT)
	assert.True(t, out.Subtotal.Equal(dec("100000")))
	assert.True(t, out.DiscountDP.Discount.Equal(dec("10000")))
	assert.True(t, out.DiscountDP.AfterDiscount.Equal(dec("90000")))
	assert.True(t, out.DiscountDP.DownPayment.Equal(dec("20000")))
	assert.True(t, out.DiscountDP.RemainingDue.Equal(dec("70000")))
	assert.True(t, out.GrandTotal.Equal(out.Subtotal.Sub(out.Discount()).Sub(out.DownPayment())))
}

func TestComputeMalformedDiscountIsZero(t *testing.T) {
	out, err := NewPricingEngine().Compute(FormInput{
		CompanyCode: "CP",
		Items:       []ItemDraft{{Quantity: "1", ItemType: "Tali", Color: "Merah", UnitPrice: dec("5000")}},
		Discount:    "sepuluh persen",
		DownPayment: "nanti",
	})
	require.NoError(t, err)
	assert.True(t, out.GrandTotal.Equal(dec("5000")))
}

func TestComputeRejectsUnknownCompanyAndEmptyItems(t *testing.T) {
	_, err := NewPricingEngine().Compute(FormInput{CompanyCode: "ZZ", Items: []ItemDraft{{Quantity: "1", ItemType: "a", Color: "b"}}})
	assert.Equal(t, "company", apperror.GetAppError(err).Errors[0].Field)

	_, err = NewPricingEngine().Compute(FormInput{CompanyCode: "CH"})
	assert.Equal(t, "items", apperror.GetAppError(err).Errors[0].Field)
}

func TestComputeReportsItemIndex(t *testing.T) {
	_, err := NewPricingEngine().Compute(FormInput{
		CompanyCode: "CR",
		Items: []ItemDraft{
			{Quantity: "1", ItemType: "Tali", Color: "Merah", UnitPrice: dec("5000")},
			{Quantity: "1", ItemType: "Terpal", Color: "Biru", UnitPrice: dec("5000")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "items[1].size", apperror.GetAppError(err).Errors[0].Field)
}

func TestTotalsFromSavedReceipt(t *testing.T) {
	receipt := &entity.Receipt{
		CompanyCode: "CR",
		Subtotal:    dec("100000"),
		Discount:    dec("10000"),
		DownPayment: dec("20000"),
		Items: []entity.LineItem{
			{Quantity: "1", ItemType: "Tali", Size: "-", Color: "Merah", QuantityCount: 1, SizeArea: dec("1"), UnitPrice: dec("100000"), TotalPrice: dec("100000")},
		},
	}

	out := Totals(receipt)
	require.NotNil(t, out.DiscountDP)
	assert.True(t, out.GrandTotal.Equal(dec("70000")))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Tali", out.Items[0].ItemType)

	receipt.CompanyCode = "CH"
	vat := Totals(receipt)
	require.NotNil(t, vat.VAT)
	assert.True(t, vat.GrandTotal.Equal(dec("111000")))
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, enum.PricingPolicyVAT, PolicyFor("CH"))
	assert.Equal(t, enum.PricingPolicyDiscountDP, PolicyFor("CR"))
	assert.Equal(t, enum.PricingPolicyDiscountDP, PolicyFor("??"))
}
