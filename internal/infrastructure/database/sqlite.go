package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/nota-perusahaan/internal/config"
	applogger "github.com/sangkips/nota-perusahaan/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const memoryPath = ":memory:"

// NewSQLiteDB opens (creating if needed) the local receipts database file.
// A path of ":memory:" gives a throwaway database.
func NewSQLiteDB(path string, log *zap.Logger) (*gorm.DB, error) {
	dsn := path
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: applogger.NewGormLogger(log, applogger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// one connection keeps ":memory:" databases shared and avoids writer contention
	sqlDB.SetMaxOpenConns(1)

	if log != nil {
		log.Info("connected to database", zap.String("driver", config.DriverSQLite), zap.String("path", path))
	}
	return db, nil
}
