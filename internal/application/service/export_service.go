package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/spreadsheet"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"go.uber.org/zap"
)

const (
	receiptsSheet = "Receipts"
	itemsSheet    = "Items"
)

var (
	receiptColumns = []string{
		"id", "receipt_number", "company_code", "company_name", "date", "recipient", "address",
		"subtotal", "tax", "discount", "down_payment", "total_amount", "issued_by", "created_at",
	}
	itemColumns = []string{
		"id", "receipt_id", "quantity", "item_type", "size", "color",
		"quantity_count", "size_area", "unit_price", "total_price",
	}
)

// ExportService archives the store to a workbook and empties it.
type ExportService struct {
	receiptRepo repository.ReceiptRepository
	itemRepo    repository.LineItemRepository
	documents   *DocumentService
	metrics     *metrics.Metrics
	log         *zap.Logger
	dir         string
	now         func() time.Time
}

// NewExportService creates a new export service writing into dir. When
// documents is set its PDF cache is cleared along with the store.
func NewExportService(
	receiptRepo repository.ReceiptRepository,
	itemRepo repository.LineItemRepository,
	documents *DocumentService,
	dir string,
	m *metrics.Metrics,
	log *zap.Logger,
) *ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportService{
		receiptRepo: receiptRepo,
		itemRepo:    itemRepo,
		documents:   documents,
		metrics:     m,
		log:         log,
		dir:         dir,
		now:         time.Now,
	}
}

// ExportResult describes a finished export.
type ExportResult struct {
	Filename string `json:"filename"`
	Receipts int    `json:"receipts"`
	Items    int    `json:"items"`
}

// Message is the summary shown to the user.
func (r *ExportResult) Message() string {
	return fmt.Sprintf("Exported %d receipts and %d items", r.Receipts, r.Items)
}

// ExportAndPurge snapshots every receipt and item into
// exported_data_<timestamp>.xlsx and then deletes them, items first. Nothing
// is deleted unless the workbook was written.
func (s *ExportService) ExportAndPurge(ctx context.Context) (*ExportResult, error) {
	receipts, err := s.receiptRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	name := fmt.Sprintf("exported_data_%s.xlsx", s.now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	err = spreadsheet.Write(path,
		spreadsheet.Sheet{Name: receiptsSheet, Header: receiptColumns, Rows: receiptRows(receipts)},
		spreadsheet.Sheet{Name: itemsSheet, Header: itemColumns, Rows: itemRows(items)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}

	if _, err := s.itemRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to purge items: %w", err)
	}
	if _, err := s.receiptRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to purge receipts: %w", err)
	}
	if s.documents != nil {
		if _, err := s.documents.PurgeCache(); err != nil {
			return nil, fmt.Errorf("failed to clear document cache: %w", err)
		}
	}

	s.metrics.ExportCompleted(len(receipts))
	s.log.Info("store exported and purged",
		zap.String("file", name),
		zap.Int("receipts", len(receipts)),
		zap.Int("items", len(items)))

	return &ExportResult{Filename: name, Receipts: len(receipts), Items: len(items)}, nil
}

// Path resolves an export file name inside the export directory.
func (s *ExportService) Path(filename string) (string, error) {
	if !utils.SafeFilename(filename) || filepath.Ext(filename) != ".xlsx" {
		return "", apperror.NewBadRequestError("Invalid export file name")
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperror.NewNotFoundError("Export file")
		}
		return "", err
	}
	return path, nil
}

func receiptRows(receipts []entity.Receipt) [][]interface{} {
	rows := make([][]interface{}, len(receipts))
	for i, r := range receipts {
		rows[i] = []interface{}{
			r.ID,
			r.ReceiptNumber,
			r.CompanyCode,
			r.CompanyName,
			r.IssueDate.Format(entity.DateLayout),
			r.Recipient,
			r.Address,
			r.Subtotal.InexactFloat64(),
			r.Tax.InexactFloat64(),
			r.Discount.InexactFloat64(),
			r.DownPayment.InexactFloat64(),
			r.TotalAmount.InexactFloat64(),
			r.IssuedBy,
			r.CreatedAt.Format(time.RFC3339),
		}
	}
	return rows
}

func itemRows(items []entity.LineItem) [][]interface{} {
	rows := make([][]interface{}, len(items))
	for i, it := range items {
		rows[i] = []interface{}{
			it.ID,
			it.ReceiptID,
			it.Quantity,
			it.ItemType,
			it.Size,
			it.Color,
			it.QuantityCount,
			it.SizeArea.InexactFloat64(),
			it.UnitPrice.InexactFloat64(),
			it.TotalPrice.InexactFloat64(),
		}
	}
	return rows
}
