package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReceiptNumber(t *testing.T) {
	assert.Equal(t, "CH00001", FormatReceiptNumber("CH", 1))
	assert.Equal(t, "CR12345", FormatReceiptNumber("CR", 12345))
	assert.Equal(t, "CP123456", FormatReceiptNumber("CP", 123456))
}

func TestNumberingSkipsNonNumericSuffixes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, n := range []string{"CH00002", "CHXYZ", "CH00010", "CH"} {
		require.NoError(t, env.receipts.Create(ctx, &entity.Receipt{
			ReceiptNumber: n,
			CompanyCode:   "CH",
			CompanyName:   "PT. CHASTE GEMILANG MANDIRI",
			IssueDate:     fixedNow,
			Recipient:     "x",
			Subtotal:      decimal.Zero,
			Tax:           decimal.Zero,
			Discount:      decimal.Zero,
			DownPayment:   decimal.Zero,
			TotalAmount:   decimal.Zero,
		}))
	}

	next, err := env.numbering.Next(ctx, "CH")
	require.NoError(t, err)
	assert.Equal(t, "CH00011", next)
}

func TestNumberingUnknownCompany(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.numbering.Next(context.Background(), "XX")
	assert.True(t, apperror.IsCode(err, http.StatusBadRequest))
	assert.Equal(t, "", env.numbering.Suggest(context.Background(), "XX"))
}
