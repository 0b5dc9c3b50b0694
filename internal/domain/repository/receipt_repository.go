package repository

import (
	"context"
	"time"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt header data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uint) (*entity.Receipt, error)
	GetByNumber(ctx context.Context, number string) (*entity.Receipt, error)
	GetWithItems(ctx context.Context, id uint) (*entity.Receipt, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	ListAll(ctx context.Context) ([]entity.Receipt, error)
	NumbersByCompany(ctx context.Context, companyCode string) ([]string, error)
	DistinctRecipients(ctx context.Context, query string, limit int) ([]string, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// ReceiptFilterParams contains filtering parameters for receipt queries.
// A nil Pagination returns every matching receipt.
type ReceiptFilterParams struct {
	Pagination  *pagination.PaginationParams
	CompanyCode string
	Search      string
	Date        *time.Time
}

// LineItemRepository defines the interface for receipt line item data operations
type LineItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.LineItem) error
	GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.LineItem, error)
	ListAll(ctx context.Context) ([]entity.LineItem, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
