package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/enum"
	"github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/pdf"
	"github.com/sangkips/nota-perusahaan/pkg/printer"
	"github.com/sangkips/nota-perusahaan/pkg/terbilang"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"go.uber.org/zap"
)

// DocumentFilename is the file name a receipt's PDF is saved and served under.
func DocumentFilename(receiptNumber string) string {
	return "nota_" + receiptNumber + ".pdf"
}

// DocumentService renders receipts to PDF, keeps the rendered files in an
// output directory and sends them to the printer.
type DocumentService struct {
	receiptRepo repository.ReceiptRepository
	printer     printer.Printer
	metrics     *metrics.Metrics
	log         *zap.Logger
	outputDir   string
	logoDir     string
	now         func() time.Time
}

// DocumentServiceOptions configures a DocumentService.
type DocumentServiceOptions struct {
	OutputDir string
	LogoDir   string
	Printer   printer.Printer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(receiptRepo repository.ReceiptRepository, opts DocumentServiceOptions) *DocumentService {
	p := opts.Printer
	if p == nil {
		p = printer.NewNullPrinter()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		receiptRepo: receiptRepo,
		printer:     p,
		metrics:     opts.Metrics,
		log:         log,
		outputDir:   opts.OutputDir,
		logoDir:     opts.LogoDir,
		now:         time.Now,
	}
}

// BuildDocument maps a saved receipt to the printable document for its
// company's template. issuedBy is the acting user; when empty the user
// recorded on the receipt is printed.
func (s *DocumentService) BuildDocument(receipt *entity.Receipt, issuedBy string) pdf.Document {
	totals := Totals(receipt)
	company := totals.Company

	if issuedBy == "" {
		issuedBy = receipt.IssuedBy
	}
	doc := pdf.Document{
		Layout:        pdf.LayoutReceipt,
		CompanyName:   receipt.CompanyName,
		ReceiptNumber: receipt.ReceiptNumber,
		Date:          receipt.IssueDate,
		Recipient:     receipt.Recipient,
		Address:       receipt.Address,
		IssuedBy:      issuedBy,
		RenderedAt:    s.now(),
	}
	if doc.CompanyName == "" {
		doc.CompanyName = company.Name
	}

	for _, item := range totals.Items {
		doc.Items = append(doc.Items, pdf.Item{
			Quantity:  item.Quantity,
			ItemType:  item.ItemType,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: pdf.FormatRupiah(item.UnitPrice),
			Total:     pdf.FormatRupiah(item.Total),
		})
	}

	if v := totals.VAT; v != nil {
		doc.Totals = []pdf.TotalLine{
			{Label: "DPP", Value: pdf.FormatRupiah(v.Subtotal)},
			{Label: "PPN (11%)", Value: pdf.FormatRupiah(v.Tax)},
			{Label: "TOTAL", Value: pdf.FormatRupiah(v.Total), Emphasis: true},
		}
	} else if d := totals.DiscountDP; d != nil {
		discountLabel := "Diskon"
		if in := strings.TrimSpace(receipt.DiscountInput); strings.HasSuffix(in, "%") {
			discountLabel = "Diskon (" + in + ")"
		}
		doc.Totals = []pdf.TotalLine{
			{Label: "Total Sebelum Potongan", Value: pdf.FormatRupiah(d.Subtotal)},
			{Label: discountLabel, Value: pdf.FormatRupiah(d.Discount)},
			{Label: "Total Setelah Diskon", Value: pdf.FormatRupiah(d.AfterDiscount)},
			{Label: "DP", Value: pdf.FormatRupiah(d.DownPayment)},
			{Label: "Sisa Perlu Bayar", Value: pdf.FormatRupiah(d.RemainingDue), Emphasis: true},
		}
	}

	if company.Template == enum.DocumentTemplateInvoice {
		doc.Layout = pdf.LayoutInvoice
		doc.AmountInWords = terbilang.Convert(totals.GrandTotal.IntPart())
		if company.LogoFile != "" {
			doc.LogoPath = filepath.Join(s.logoDir, company.LogoFile)
		}
		if c := company.Contact; c != nil {
			doc.Contact = &pdf.Contact{
				City:        c.City,
				Address:     c.Address,
				Phone:       c.Phone,
				BankName:    c.BankName,
				BankAccount: c.BankAccount,
			}
		}
	}
	return doc
}

// Render produces the PDF bytes for a receipt loaded with its items.
func (s *DocumentService) Render(receipt *entity.Receipt, issuedBy string) ([]byte, error) {
	doc := s.BuildDocument(receipt, issuedBy)
	data, err := pdf.Render(doc)
	if err != nil {
		s.metrics.DocumentFailed("render")
		return nil, err
	}
	s.metrics.DocumentRendered(layoutName(doc.Layout))
	return data, nil
}

// Path returns where the PDF for receiptNumber is stored.
func (s *DocumentService) Path(receiptNumber string) (string, error) {
	name := DocumentFilename(receiptNumber)
	if !utils.SafeFilename(name) {
		return "", apperror.NewBadRequestError("Invalid receipt number")
	}
	return filepath.Join(s.outputDir, name), nil
}

// PurgeCache removes every stored receipt PDF. Numbers restart after the
// store is emptied, so files left behind would be served for new receipts.
func (s *DocumentService) PurgeCache() (int, error) {
	paths, err := filepath.Glob(filepath.Join(s.outputDir, DocumentFilename("*")))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
		}
		removed++
	}
	return removed, nil
}

// Write renders the receipt and saves it in the output directory, replacing
// any earlier file. It returns the written path.
func (s *DocumentService) Write(receipt *entity.Receipt) (string, error) {
	return s.write(receipt, "")
}

func (s *DocumentService) write(receipt *entity.Receipt, issuedBy string) (string, error) {
	path, err := s.Path(receipt.ReceiptNumber)
	if err != nil {
		return "", err
	}
	data, err := s.Render(receipt, issuedBy)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.metrics.DocumentFailed("write")
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

func (s *DocumentService) receipt(ctx context.Context, id uint) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// Exists reports whether the PDF of receipt id has been written.
func (s *DocumentService) Exists(ctx context.Context, id uint) (bool, error) {
	receipt, err := s.receipt(ctx, id)
	if err != nil {
		return false, err
	}
	path, err := s.Path(receipt.ReceiptNumber)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// RenderedDocument is a PDF ready to be served or printed.
type RenderedDocument struct {
	Filename string
	Path     string
	Data     []byte
}

// Load returns the stored PDF of receipt id, rendering and storing it first
// when it does not exist yet.
func (s *DocumentService) Load(ctx context.Context, id uint, issuedBy string) (*RenderedDocument, error) {
	receipt, err := s.receipt(ctx, id)
	if err != nil {
		return nil, err
	}
	path, err := s.Path(receipt.ReceiptNumber)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return &RenderedDocument{Filename: filepath.Base(path), Path: path, Data: data}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	data, err = s.Render(receipt, issuedBy)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err == nil {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			s.log.Warn("could not cache document", zap.String("path", path), zap.Error(err))
		}
	}
	return &RenderedDocument{Filename: filepath.Base(path), Path: path, Data: data}, nil
}

// Regenerate renders receipt id again, overwriting the stored PDF.
func (s *DocumentService) Regenerate(ctx context.Context, id uint, issuedBy string) (string, error) {
	receipt, err := s.receipt(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := s.write(receipt, issuedBy)
	if err != nil {
		return "", err
	}
	s.log.Info("document regenerated", zap.String("receipt_number", receipt.ReceiptNumber), zap.String("path", path))
	return filepath.Base(path), nil
}

// Print sends the PDF of receipt id to the configured printer.
func (s *DocumentService) Print(ctx context.Context, id uint, issuedBy string) (*RenderedDocument, error) {
	doc, err := s.Load(ctx, id, issuedBy)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, printer.Job{Name: doc.Filename, Data: doc.Data}); err != nil {
		s.metrics.DocumentFailed("print")
		return nil, apperror.NewAppError(http.StatusBadGateway, "Failed to print document: "+err.Error())
	}
	s.log.Info("document printed", zap.String("file", doc.Filename))
	return doc, nil
}

// PrinterStatus describes the configured printer.
func (s *DocumentService) PrinterStatus(ctx context.Context) printer.Status {
	return s.printer.Status(ctx)
}

func layoutName(l pdf.Layout) string {
	if l == pdf.LayoutInvoice {
		return enum.DocumentTemplateInvoice.String()
	}
	return enum.DocumentTemplateReceipt.String()
}
