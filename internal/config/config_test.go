package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, cfg.EnvFileErr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, int64(1000), cfg.Export.Threshold)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, "nota_pdf", cfg.Documents.OutputDir)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
}

func TestLoadFileReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	content := "DATABASE_URL=postgres://nota:secret@db:5432/nota\nEXPORT_THRESHOLD=50\nAPP_PORT=9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := LoadFile(path)

	require.NoError(t, cfg.EnvFileErr)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://nota:secret@db:5432/nota", cfg.Database.DSN())
	assert.Equal(t, int64(50), cfg.Export.Threshold)
	assert.Equal(t, "9000", cfg.App.Port)
}

func TestEnvironmentOverridesPort(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DB_DRIVER", "sqlite3")

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
}

func TestDSNFromParts(t *testing.T) {
	db := DatabaseConfig{Host: "h", User: "u", Password: "p", Name: "n", Port: "1", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", db.DSN())
}
