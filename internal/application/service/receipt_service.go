package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/pagination"
	"go.uber.org/zap"
)

// approachingLimitRatio is the share of the export threshold at which the
// store is reported as nearly full.
const approachingLimitRatio = 0.8

// ReceiptService saves receipts and serves the history views.
type ReceiptService struct {
	receiptRepo     repository.ReceiptRepository
	itemRepo        repository.LineItemRepository
	pricing         *PricingEngine
	numbering       *NumberingService
	documents       *DocumentService
	metrics         *metrics.Metrics
	log             *zap.Logger
	exportThreshold int64
	now             func() time.Time
}

// ReceiptServiceOptions carries the optional collaborators of a ReceiptService.
type ReceiptServiceOptions struct {
	Documents       *DocumentService
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
	ExportThreshold int64
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	itemRepo repository.LineItemRepository,
	numbering *NumberingService,
	opts ReceiptServiceOptions,
) *ReceiptService {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{
		receiptRepo:     receiptRepo,
		itemRepo:        itemRepo,
		pricing:         NewPricingEngine(),
		numbering:       numbering,
		documents:       opts.Documents,
		metrics:         opts.Metrics,
		log:             log,
		exportThreshold: opts.ExportThreshold,
		now:             time.Now,
	}
}

// CreateReceiptInput is a filled-in receipt form.
type CreateReceiptInput struct {
	CompanyCode   string
	ReceiptNumber string
	Date          string
	Recipient     string
	Address       string
	Items         []ItemDraft
	Discount      string
	DownPayment   string
	IssuedBy      string
}

// CreateReceiptOutput is a saved receipt with its pricing breakdown.
type CreateReceiptOutput struct {
	Receipt  *entity.Receipt
	Totals   *FormOutput
	Document string
}

// Create validates and prices the form, then stores the header followed by
// its items. The two writes are not atomic: when the item insert fails the
// header stays behind and the error is returned.
func (s *ReceiptService) Create(ctx context.Context, input *CreateReceiptInput) (*CreateReceiptOutput, error) {
	header, errs, err := s.validateHeader(ctx, input)
	if err != nil {
		return nil, err
	}

	priced, err := s.pricing.Compute(FormInput{
		CompanyCode: input.CompanyCode,
		Items:       input.Items,
		Discount:    input.Discount,
		DownPayment: input.DownPayment,
	})
	if err != nil {
		appErr := apperror.GetAppError(err)
		if appErr.Code != apperror.ErrBadRequest.Code {
			return nil, err
		}
		for _, fe := range appErr.Errors {
			if fe.Field == "company" && hasField(errs, "company") {
				continue
			}
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := s.receiptRepo.GetByNumber(ctx, header.ReceiptNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Receipt number %s already exists", header.ReceiptNumber))
	}

	header.Subtotal = priced.Subtotal
	header.Tax = priced.Tax()
	header.Discount = priced.Discount()
	header.DownPayment = priced.DownPayment()
	header.TotalAmount = priced.GrandTotal
	if priced.DiscountDP != nil {
		header.DiscountInput = strings.TrimSpace(input.Discount)
	}

	if err := s.receiptRepo.Create(ctx, header); err != nil {
		return nil, fmt.Errorf("failed to save receipt header: %w", err)
	}

	items := make([]entity.LineItem, len(priced.Items))
	for i, p := range priced.Items {
		items[i] = p.LineItem()
		items[i].ReceiptID = header.ID
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		s.log.Error("receipt header saved without items",
			zap.Uint("receipt_id", header.ID),
			zap.String("receipt_number", header.ReceiptNumber),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save receipt items: %w", err)
	}
	header.Items = items

	s.metrics.ReceiptCreated(header.CompanyCode)
	s.log.Info("receipt saved",
		zap.Uint("receipt_id", header.ID),
		zap.String("receipt_number", header.ReceiptNumber),
		zap.Int("items", len(items)))

	out := &CreateReceiptOutput{Receipt: header, Totals: priced}
	if s.documents != nil {
		if _, err := s.documents.Write(header); err != nil {
			s.log.Warn("could not render receipt document",
				zap.String("receipt_number", header.ReceiptNumber),
				zap.Error(err))
		} else {
			out.Document = DocumentFilename(header.ReceiptNumber)
		}
	}
	return out, nil
}

// validateHeader collects field errors for the header. The error return is
// reserved for store failures while assigning a number.
func (s *ReceiptService) validateHeader(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, []apperror.FieldError, error) {
	var errs []apperror.FieldError
	header := &entity.Receipt{
		Recipient: strings.TrimSpace(input.Recipient),
		Address:   strings.TrimSpace(input.Address),
		IssuedBy:  strings.TrimSpace(input.IssuedBy),
	}

	company, ok := entity.LookupCompany(input.CompanyCode)
	if !ok {
		msg := "Please select a company"
		if strings.TrimSpace(input.CompanyCode) != "" {
			msg = "Unknown company"
		}
		errs = append(errs, apperror.FieldError{Field: "company", Message: msg})
	} else {
		header.CompanyCode = company.Code
		header.CompanyName = company.Name
	}

	number := strings.ToUpper(strings.TrimSpace(input.ReceiptNumber))
	if number == "" && ok {
		next, err := s.numbering.Next(ctx, company.Code)
		if err != nil {
			s.log.Warn("could not assign receipt number", zap.String("company", company.Code), zap.Error(err))
			return nil, nil, err
		}
		number = next
	}
	switch {
	case number == "":
		errs = append(errs, apperror.FieldError{Field: "receipt_number", Message: "Receipt number is required"})
	case ok && !strings.HasPrefix(number, company.Code):
		errs = append(errs, apperror.FieldError{
			Field:   "receipt_number",
			Message: fmt.Sprintf("Receipt number must start with %s", company.Code),
		})
	case ok && !ValidReceiptNumber(company.Code, number):
		errs = append(errs, apperror.FieldError{
			Field:   "receipt_number",
			Message: fmt.Sprintf("Receipt number must look like %s", FormatReceiptNumber(company.Code, 1)),
		})
	}
	header.ReceiptNumber = number

	if header.Recipient == "" {
		errs = append(errs, apperror.FieldError{Field: "recipient", Message: "Recipient is required"})
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		now := s.now()
		header.IssueDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else if d, err := time.Parse(entity.DateLayout, date); err != nil {
		errs = append(errs, apperror.FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	} else {
		header.IssueDate = d
	}

	return header, errs, nil
}

func hasField(errs []apperror.FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Preview prices a form without saving anything.
func (s *ReceiptService) Preview(input FormInput) (*FormOutput, error) {
	return s.pricing.Compute(input)
}

// Get returns a receipt with its items.
func (s *ReceiptService) Get(ctx context.Context, id uint) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceiptsInput filters the history. Page zero returns every match.
type ListReceiptsInput struct {
	CompanyCode string
	Search      string
	Date        string
	Page        int
	PerPage     int
}

// ReceiptList is one page (or all) of the history, newest first.
type ReceiptList struct {
	Receipts   []entity.Receipt       `json:"receipts"`
	Pagination *pagination.Pagination `json:"pagination,omitempty"`
}

// List returns stored receipts, newest first.
func (s *ReceiptService) List(ctx context.Context, input *ListReceiptsInput) (*ReceiptList, error) {
	params := &repository.ReceiptFilterParams{
		CompanyCode: input.CompanyCode,
		Search:      input.Search,
	}
	if date := strings.TrimSpace(input.Date); date != "" {
		d, err := time.Parse(entity.DateLayout, date)
		if err != nil {
			return nil, apperror.NewFieldError("date", "Date must be in YYYY-MM-DD format")
		}
		params.Date = &d
	}
	if input.Page > 0 {
		params.Pagination = &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	}

	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if receipts == nil {
		receipts = []entity.Receipt{}
	}

	out := &ReceiptList{Receipts: receipts}
	if params.Pagination != nil {
		out.Pagination = pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	}
	return out, nil
}

// Recipients returns previously used recipient names matching query.
func (s *ReceiptService) Recipients(ctx context.Context, query string, limit int) ([]string, error) {
	names, err := s.receiptRepo.DistinctRecipients(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// NextNumber suggests the next receipt number for a company, or "" when none
// can be derived.
func (s *ReceiptService) NextNumber(ctx context.Context, code string) string {
	return s.numbering.Suggest(ctx, code)
}

// Stats summarizes how full the store is relative to the export threshold.
type Stats struct {
	ReceiptsCount    int64 `json:"receipts_count"`
	ItemsCount       int64 `json:"items_count"`
	ExportThreshold  int64 `json:"export_threshold"`
	ApproachingLimit bool  `json:"approaching_limit"`
}

// Stats counts stored receipts and items.
func (s *ReceiptService) Stats(ctx context.Context) (*Stats, error) {
	receipts, err := s.receiptRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		ReceiptsCount:    receipts,
		ItemsCount:       items,
		ExportThreshold:  s.exportThreshold,
		ApproachingLimit: s.exportThreshold > 0 && float64(receipts) >= float64(s.exportThreshold)*approachingLimitRatio,
	}, nil
}

// Ping reports whether the store is reachable.
func (s *ReceiptService) Ping(ctx context.Context) error {
	return s.receiptRepo.Ping(ctx)
}
