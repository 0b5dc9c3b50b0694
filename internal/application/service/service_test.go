package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	domainRepo "github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/database"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	infraRepo "github.com/sangkips/nota-perusahaan/internal/infrastructure/repository"
	"github.com/sangkips/nota-perusahaan/pkg/printer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db        *gorm.DB
	receipts  domainRepo.ReceiptRepository
	items     domainRepo.LineItemRepository
	users     domainRepo.UserRepository
	numbering *NumberingService
	documents *DocumentService
	receipt   *ReceiptService
	export    *ExportService
	metrics   *metrics.Metrics
	docDir    string
	exportDir string
	spoolDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:        db,
		receipts:  infraRepo.NewReceiptRepository(db),
		items:     infraRepo.NewLineItemRepository(db),
		users:     infraRepo.NewUserRepository(db),
		metrics:   metrics.New(),
		docDir:    t.TempDir(),
		exportDir: t.TempDir(),
		spoolDir:  t.TempDir(),
	}
	env.numbering = NewNumberingService(env.receipts, zap.NewNop())
	env.documents = NewDocumentService(env.receipts, DocumentServiceOptions{
		OutputDir: env.docDir,
		LogoDir:   t.TempDir(),
		Printer:   printer.NewSpoolPrinter(env.spoolDir),
		Metrics:   env.metrics,
	})
	env.documents.now = func() time.Time { return fixedNow }
	env.receipt = NewReceiptService(env.receipts, env.items, env.numbering, ReceiptServiceOptions{
		Documents:       env.documents,
		Metrics:         env.metrics,
		ExportThreshold: 10,
	})
	env.receipt.now = func() time.Time { return fixedNow }
	env.export = NewExportService(env.receipts, env.items, env.documents, env.exportDir, env.metrics, zap.NewNop())
	env.export.now = func() time.Time { return fixedNow }
	return env
}

func terpalInput(company, number string) *CreateReceiptInput {
	return &CreateReceiptInput{
		CompanyCode:   company,
		ReceiptNumber: number,
		Date:          "2026-10-19",
		Recipient:     "Budi Santoso",
		Address:       "Jl. Raya Darmo 12, Surabaya",
		IssuedBy:      "Administrator",
		Items: []ItemDraft{
			{Quantity: "Dua (2) lbr", ItemType: "Terpal Biru", Size: "4X6", Color: "Biru", UnitPrice: dec("10000")},
			{Quantity: "3", ItemType: "Baju", Color: "Merah", UnitPrice: dec("25000")},
		},
	}
}

// failingItems fails every item insert, leaving the header behind.
type failingItems struct {
	domainRepo.LineItemRepository
}

func (failingItems) CreateBatch(context.Context, []entity.LineItem) error {
	return errors.New("items table unavailable")
}
