package repository

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"gorm.io/gorm"
)

// conn returns a context-bound handle, or ErrStoreUnavailable when the
// repository was built without a database.
func conn(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	if db == nil {
		return nil, apperror.ErrStoreUnavailable
	}
	return db.WithContext(ctx), nil
}

// CompanyScope filters receipts by issuing company. An empty code matches all.
func CompanyScope(code string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return db
		}
		return db.Where("company_code = ?", code)
	}
}

// SearchScope matches a case-insensitive substring of the recipient, the
// receipt number or the company name.
func SearchScope(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.ToLower(strings.TrimSpace(search))
		if search == "" {
			return db
		}
		pattern := "%" + search + "%"
		return db.Where("LOWER(recipient) LIKE ? OR LOWER(receipt_number) LIKE ? OR LOWER(company_name) LIKE ?",
			pattern, pattern, pattern)
	}
}

// IssueDateScope keeps receipts issued on the given calendar day.
func IssueDateScope(day *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if day == nil {
			return db
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		return db.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}
}
