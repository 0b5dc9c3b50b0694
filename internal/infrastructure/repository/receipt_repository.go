package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	domainRepo "github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository. A nil db yields a
// repository whose every call fails with ErrStoreUnavailable.
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create inserts the header only; line items are written separately.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Omit(clause.Associations).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var receipt entity.Receipt
	err = db.First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByNumber(ctx context.Context, number string) (*entity.Receipt, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var receipt entity.Receipt
	err = db.First(&receipt, "receipt_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uint) (*entity.Receipt, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var receipt entity.Receipt
	err = db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	var receipts []entity.Receipt
	var total int64

	query := db.Model(&entity.Receipt{}).Scopes(
		CompanyScope(params.CompanyCode),
		SearchScope(params.Search),
		IssueDateScope(params.Date),
	)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if params.Pagination != nil {
		params.Pagination.Validate()
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	err = query.Find(&receipts).Error
	return receipts, total, err
}

func (r *receiptRepository) ListAll(ctx context.Context) ([]entity.Receipt, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var receipts []entity.Receipt
	err = db.Order("id ASC").Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) NumbersByCompany(ctx context.Context, companyCode string) ([]string, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var numbers []string
	err = db.Model(&entity.Receipt{}).
		Scopes(CompanyScope(companyCode)).
		Pluck("receipt_number", &numbers).Error
	return numbers, err
}

func (r *receiptRepository) DistinctRecipients(ctx context.Context, query string, limit int) ([]string, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	q := db.Model(&entity.Receipt{}).Where("recipient <> ''")
	if query != "" {
		q = q.Where("LOWER(recipient) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var names []string
	err = q.Distinct().Order("recipient").Pluck("recipient", &names).Error
	return names, err
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&entity.Receipt{}).Count(&count).Error
	return count, err
}

func (r *receiptRepository) DeleteAll(ctx context.Context) (int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return 0, err
	}
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Receipt{})
	return result.RowsAffected, result.Error
}

func (r *receiptRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return apperror.ErrStoreUnavailable
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository
func NewLineItemRepository(db *gorm.DB) domainRepo.LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) CreateBatch(ctx context.Context, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Create(&items).Error
}

func (r *lineItemRepository) GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.LineItem, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var items []entity.LineItem
	err = db.Where("receipt_id = ?", receiptID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *lineItemRepository) ListAll(ctx context.Context) ([]entity.LineItem, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var items []entity.LineItem
	err = db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *lineItemRepository) Count(ctx context.Context) (int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&entity.LineItem{}).Count(&count).Error
	return count, err
}

func (r *lineItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return 0, err
	}
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.LineItem{})
	return result.RowsAffected, result.Error
}
