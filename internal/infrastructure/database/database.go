package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open connects to the database selected by cfg.Driver.
func Open(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.ResolveDriver() {
	case config.DriverPostgres:
		return NewPostgresDB(cfg, log)
	default:
		return NewSQLiteDB(cfg.SQLitePath, log)
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Receipt{},
		&entity.LineItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedAdmin creates the configured admin account when it does not exist yet.
// Nothing happens when no admin credentials are configured.
func SeedAdmin(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	username := strings.TrimSpace(admin.Username)
	if username == "" || admin.Password == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := entity.User{
		FullName: admin.FullName,
		Username: username,
		Email:    username + "@localhost",
		Password: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if log != nil {
		log.Info("seeded admin user", zap.String("username", username))
	}
	return nil
}
