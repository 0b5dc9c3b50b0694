package database

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenSQLiteFileAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "data", "receipts.db")}

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	assert.True(t, db.Migrator().HasTable(&entity.Receipt{}))
	assert.True(t, db.Migrator().HasTable("items"))
	assert.True(t, db.Migrator().HasTable(&entity.User{}))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	admin := config.AdminConfig{Username: "admin", Password: "rahasia", FullName: "Admin Toko"}
	require.NoError(t, SeedAdmin(db, admin, zap.NewNop()))
	require.NoError(t, SeedAdmin(db, admin, zap.NewNop()))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Admin Toko", users[0].FullName)
	assert.True(t, utils.CheckPasswordHash("rahasia", users[0].Password))
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedAdmin(db, config.AdminConfig{}, nil))

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
