package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type cliEnv struct {
	cfg      *config.Config
	db       *gorm.DB
	spoolDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	env := &cliEnv{db: db, spoolDir: t.TempDir()}
	env.cfg = &config.Config{
		Database:  config.DatabaseConfig{SQLitePath: ":memory:"},
		Documents: config.DocumentsConfig{OutputDir: t.TempDir(), LogoDir: t.TempDir(), ExportDir: t.TempDir()},
		Export:    config.ExportConfig{Threshold: 1000},
		Log:       config.LogConfig{Level: "info"},
		Printer:   config.PrinterConfig{Type: "spool", Address: env.spoolDir},
	}
	return env
}

func (e *cliEnv) execute(args ...string) (string, error) {
	cmd := newRootCommand(&RootOptions{
		Config: e.cfg,
		openDB: func(*config.DatabaseConfig, *zap.Logger) (*gorm.DB, func(), error) {
			return e.db, func() {}, nil
		},
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) createReceipt(t *testing.T) {
	t.Helper()
	out, err := e.execute("new",
		"--company", "CR",
		"--date", "2026-10-19",
		"--recipient", "Budi Santoso",
		"--issued-by", "Siti Rahma",
		"--item", "2 lbr|Terpal Biru|4x6|Biru|10000",
		"--item", "3|Baju||Merah|25,000",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved CR00001")
	assert.Contains(t, out, "Rp 555,000")
}

func TestRootCommandPresence(t *testing.T) {
	cmd := NewRootCommand(&config.Config{})
	for _, name := range []string{"new", "history", "show", "pdf", "print", "export", "next-number", "recipients", "companies", "stats"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.Equal(t, config.DriverSQLite, cmd.PersistentFlags().Lookup("driver").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.execute("companies", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCompaniesTable(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.execute("companies")
	require.NoError(t, err)
	assert.Contains(t, out, "PT. CHASTE GEMILANG MANDIRI")
	assert.Contains(t, out, "DiscountDP")
}

func TestCreateHistoryAndShow(t *testing.T) {
	env := newCLIEnv(t)
	env.createReceipt(t)

	out, err := env.execute("history", "--company", "CR")
	require.NoError(t, err)
	assert.Contains(t, out, "CR00001")
	assert.Contains(t, out, "Budi Santoso")

	out, err = env.execute("history", "--company", "CH")
	require.NoError(t, err)
	assert.Contains(t, out, "No receipts found")

	out, err = env.execute("history", "--format", "json")
	require.NoError(t, err)
	var list struct {
		Receipts []map[string]interface{} `json:"receipts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Receipts, 1)
	assert.Equal(t, 555000.0, list.Receipts[0]["total_amount"])

	out, err = env.execute("show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Terpal Biru")
	assert.Contains(t, out, "Sisa Perlu Bayar")

	_, err = env.execute("show", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = env.execute("show", "abc")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.execute("new", "--company", "CR", "--item", "1|Baju||Merah|1000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "recipient")

	_, err = env.execute("new", "--company", "CR", "--recipient", "Budi", "--item", "1|Baju|Merah")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestParseItems(t *testing.T) {
	drafts, err := parseItems([]string{"Dua (2)|Terpal|4x6|Biru|10,000", "1|Baju|||"})
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "10000", drafts[0].UnitPrice.String())
	assert.True(t, drafts[1].UnitPrice.IsZero())

	_, err = parseItems([]string{"1|Baju||Merah|sepuluh"})
	assert.Error(t, err)
}

func TestPDFAndPrint(t *testing.T) {
	env := newCLIEnv(t)
	env.createReceipt(t)

	target := filepath.Join(t.TempDir(), "copy.pdf")
	out, err := env.execute("pdf", "1", "--output", target)
	require.NoError(t, err, out)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	out, err = env.execute("pdf", "1", "--regenerate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "nota_CR00001.pdf")

	out, err = env.execute("print", "1")
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(env.spoolDir, "nota_CR00001.pdf"))
}

func TestLookups(t *testing.T) {
	env := newCLIEnv(t)
	env.createReceipt(t)

	out, err := env.execute("next-number", "CR")
	require.NoError(t, err)
	assert.Equal(t, "CR00002\n", out)

	_, err = env.execute("next-number", "XX")
	assert.Error(t, err)

	out, err = env.execute("recipients", "budi")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso\n", out)
}

func TestExportNeedsConfirmation(t *testing.T) {
	env := newCLIEnv(t)
	env.createReceipt(t)

	_, err := env.execute("export")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 receipts and 2 items")

	out, err := env.execute("export", "--yes")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exported 1 receipts and 2 items")

	out, err = env.execute("stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Receipts: 0 / 1000")
}

func TestOpenMigratedClosesOnMigrationFailure(t *testing.T) {
	cfg := &config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "nota.db")}

	var opened *gorm.DB
	db, closeDB, err := openMigrated(cfg, zap.NewNop(), func(db *gorm.DB) error {
		opened = db
		return errors.New("migration failed")
	})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Nil(t, closeDB)

	require.NotNil(t, opened)
	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
