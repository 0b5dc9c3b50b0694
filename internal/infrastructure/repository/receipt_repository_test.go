package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	domainRepo "github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/database"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func day(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedReceipt(t *testing.T, repo domainRepo.ReceiptRepository, items domainRepo.LineItemRepository, number, recipient, date string) *entity.Receipt {
	t.Helper()
	r := &entity.Receipt{
		ReceiptNumber: number,
		CompanyCode:   number[:2],
		CompanyName:   "Test Co",
		IssueDate:     day(date),
		Recipient:     recipient,
		Subtotal:      decimal.NewFromInt(100000),
		Tax:           decimal.Zero,
		Discount:      decimal.Zero,
		DownPayment:   decimal.Zero,
		TotalAmount:   decimal.NewFromInt(100000),
	}
	require.NoError(t, repo.Create(context.Background(), r))
	require.NotZero(t, r.ID)

	require.NoError(t, items.CreateBatch(context.Background(), []entity.LineItem{{
		ReceiptID:     r.ID,
		Quantity:      "Dua (2) lbr",
		ItemType:      "Terpal",
		Size:          "4X6",
		Color:         "Biru",
		QuantityCount: 2,
		SizeArea:      decimal.NewFromInt(24),
		UnitPrice:     decimal.NewFromInt(1000),
		TotalPrice:    decimal.NewFromInt(48000),
	}}))
	return r
}

func TestReceiptRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	receipts := NewReceiptRepository(db)
	items := NewLineItemRepository(db)
	ctx := context.Background()

	created := seedReceipt(t, receipts, items, "CR00001", "Toko Maju", "2026-10-19")

	got, err := receipts.GetWithItems(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CR00001", got.ReceiptNumber)
	assert.Equal(t, "2026-10-19", got.IssueDate.Format(entity.DateLayout))
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(100000)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].QuantityCount)
	assert.True(t, got.Items[0].SizeArea.Equal(decimal.NewFromInt(24)))
	assert.True(t, got.Items[0].TotalPrice.Equal(decimal.NewFromInt(48000)))

	byNumber, err := receipts.GetByNumber(ctx, "CR00001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	missing, err := receipts.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReceiptRepositoryDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	receipts := NewReceiptRepository(db)
	items := NewLineItemRepository(db)

	seedReceipt(t, receipts, items, "CH00001", "Budi", "2026-10-19")

	dup := &entity.Receipt{ReceiptNumber: "CH00001", CompanyCode: "CH", CompanyName: "x", IssueDate: day("2026-10-19"), Recipient: "y"}
	assert.Error(t, receipts.Create(context.Background(), dup))
}

func TestReceiptRepositoryListFilters(t *testing.T) {
	db := newTestDB(t)
	receipts := NewReceiptRepository(db)
	items := NewLineItemRepository(db)
	ctx := context.Background()

	seedReceipt(t, receipts, items, "CH00001", "Budi Santoso", "2026-10-18")
	seedReceipt(t, receipts, items, "CR00001", "Toko Maju", "2026-10-19")
	seedReceipt(t, receipts, items, "CR00002", "budi jaya", "2026-10-19")

	all, total, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "CR00002", all[0].ReceiptNumber, "newest first")

	byCompany, total, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{CompanyCode: "cr"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byCompany, 2)

	bySearch, _, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{Search: "BUDI"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	byNumber, _, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{Search: "ch000"})
	require.NoError(t, err)
	assert.Len(t, byNumber, 1)

	d := day("2026-10-19")
	byDate, _, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{Date: &d})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	paged, total, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, paged, 1)
}

func TestReceiptRepositoryNumbersAndRecipients(t *testing.T) {
	db := newTestDB(t)
	receipts := NewReceiptRepository(db)
	items := NewLineItemRepository(db)
	ctx := context.Background()

	seedReceipt(t, receipts, items, "CR00001", "Toko Maju", "2026-10-19")
	seedReceipt(t, receipts, items, "CR00007", "Toko Maju", "2026-10-19")
	seedReceipt(t, receipts, items, "CP00003", "Andi", "2026-10-19")

	numbers, err := receipts.NumbersByCompany(ctx, "CR")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CR00001", "CR00007"}, numbers)

	names, err := receipts.DistinctRecipients(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Andi", "Toko Maju"}, names)

	filtered, err := receipts.DistinctRecipients(ctx, "toko", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toko Maju"}, filtered)
}

func TestReceiptRepositoryDeleteAll(t *testing.T) {
	db := newTestDB(t)
	receipts := NewReceiptRepository(db)
	items := NewLineItemRepository(db)
	ctx := context.Background()

	seedReceipt(t, receipts, items, "CR00001", "A", "2026-10-19")
	seedReceipt(t, receipts, items, "CR00002", "B", "2026-10-19")

	deletedItems, err := items.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deletedItems)

	deleted, err := receipts.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	count, err := receipts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoriesWithoutDatabase(t *testing.T) {
	ctx := context.Background()
	receipts := NewReceiptRepository(nil)
	items := NewLineItemRepository(nil)
	users := NewUserRepository(nil)

	_, _, err := receipts.List(ctx, &domainRepo.ReceiptFilterParams{})
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	assert.ErrorIs(t, receipts.Ping(ctx), apperror.ErrStoreUnavailable)
	_, err = items.Count(ctx)
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	_, err = users.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)

	assert.NoError(t, items.CreateBatch(ctx, nil))
}
