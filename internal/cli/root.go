package cli

import (
	"fmt"

	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/database"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/repository"
	"github.com/sangkips/nota-perusahaan/pkg/logger"
	"github.com/sangkips/nota-perusahaan/pkg/printer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  *config.Config
	Driver  string
	DBPath  string
	Format  string // "json" | "text"
	Verbose bool

	// openDB opens the store; tests replace it with an in-memory database.
	openDB func(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, func(), error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// app is the service graph shared by the subcommands of one invocation.
type app struct {
	receipts  *service.ReceiptService
	documents *service.DocumentService
	exports   *service.ExportService
	close     func()
}

// NewRootCommand creates the root command of the local receipt tool.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	return newRootCommand(&RootOptions{Config: cfg, openDB: openDatabase})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nota",
		Short: "Nota Perusahaan - receipts and invoices",
		Long: `Create, list, render and export receipts and invoices for the
company registry, backed by a local SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", config.DriverSQLite, "store driver (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", opts.Config.Database.SQLitePath, "path to the SQLite database")

	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewPDFCommand(opts))
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewNextNumberCommand(opts))
	cmd.AddCommand(NewRecipientsCommand(opts))
	cmd.AddCommand(NewCompaniesCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// run opens the store, hands the services to fn and closes the store again.
func (o *RootOptions) run(cmd *cobra.Command, fn func(a *app, out *OutputFormatter) error) error {
	a, err := o.load()
	if err != nil {
		return err
	}
	defer a.close()
	if err := fn(a, o.formatter(cmd)); err != nil {
		return exitError(err)
	}
	return nil
}

func (o *RootOptions) load() (*app, error) {
	cfg := o.Config

	level := cfg.Log.Level
	if !o.Verbose {
		level = "warn"
	}
	log, err := logger.New(logger.Config{
		ServiceName: "nota-cli",
		Environment: cfg.App.Env,
		Level:       level,
		Format:      "console",
		Output:      "stderr",
	})
	if err != nil {
		return nil, err
	}

	dbCfg := cfg.Database
	dbCfg.Driver = o.Driver
	dbCfg.SQLitePath = o.DBPath
	db, closeDB, err := o.openDB(&dbCfg, log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot open database", err)
	}

	p, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		p = printer.NewNullPrinter()
	}

	receiptRepo := repository.NewReceiptRepository(db)
	itemRepo := repository.NewLineItemRepository(db)
	documents := service.NewDocumentService(receiptRepo, service.DocumentServiceOptions{
		OutputDir: cfg.Documents.OutputDir,
		LogoDir:   cfg.Documents.LogoDir,
		Printer:   p,
		Logger:    log,
	})

	receipts := service.NewReceiptService(receiptRepo, itemRepo, service.NewNumberingService(receiptRepo, log), service.ReceiptServiceOptions{
		Documents:       documents,
		Logger:          log,
		ExportThreshold: cfg.Export.Threshold,
	})

	return &app{
		receipts:  receipts,
		documents: documents,
		exports:   service.NewExportService(receiptRepo, itemRepo, documents, cfg.Documents.ExportDir, nil, log),
		close: func() {
			_ = log.Sync()
			closeDB()
		},
	}, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

func openDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, func(), error) {
	return openMigrated(cfg, log, database.AutoMigrate)
}

func openMigrated(cfg *config.DatabaseConfig, log *zap.Logger, migrate func(*gorm.DB) error) (*gorm.DB, func(), error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
