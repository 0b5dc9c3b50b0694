package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/database"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/repository"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/handler"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/middleware"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/routes"
	"github.com/sangkips/nota-perusahaan/pkg/logger"
	"github.com/sangkips/nota-perusahaan/pkg/printer"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLog, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if cfg.EnvFileErr != nil {
		zapLog.Debug("no .env file loaded, using environment only", zap.Error(cfg.EnvFileErr))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// A store that cannot be opened leaves the server up; every data call
	// then answers "Database not configured".
	db := openStore(cfg, zapLog)

	m := metrics.New()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	receiptRepo := repository.NewReceiptRepository(db)
	itemRepo := repository.NewLineItemRepository(db)
	userRepo := repository.NewUserRepository(db)

	docPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zapLog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		docPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, zapLog)
	numberingService := service.NewNumberingService(receiptRepo, zapLog)
	documentService := service.NewDocumentService(receiptRepo, service.DocumentServiceOptions{
		OutputDir: cfg.Documents.OutputDir,
		LogoDir:   cfg.Documents.LogoDir,
		Printer:   docPrinter,
		Metrics:   m,
		Logger:    zapLog,
	})
	receiptService := service.NewReceiptService(receiptRepo, itemRepo, numberingService, service.ReceiptServiceOptions{
		Documents:       documentService,
		Metrics:         m,
		Logger:          zapLog,
		ExportThreshold: cfg.Export.Threshold,
	})
	exportService := service.NewExportService(receiptRepo, itemRepo, documentService, cfg.Documents.ExportDir, m, zapLog)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.App.Env == "production"),
		Page:     handler.NewPageHandler(receiptService, documentService, cfg.Database.Driver),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Document: handler.NewDocumentHandler(documentService),
		Export:   handler.NewExportHandler(exportService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Close()

	// Setup routes
	router, err := routes.Setup(handlers, &routes.Deps{
		Auth:        authService,
		Cfg:         cfg,
		Logger:      zapLog,
		Metrics:     m,
		RateLimiter: rateLimiter,
	})
	if err != nil {
		zapLog.Fatal("failed to set up routes", zap.Error(err))
	}

	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("starting server",
			zap.String("port", port),
			zap.String("driver", cfg.Database.Driver),
			zap.String("printer", cfg.Printer.Type),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("server forced to shut down", zap.Error(err))
	}
}

func openStore(cfg *config.Config, zapLog *zap.Logger) *gorm.DB {
	db, err := database.Open(&cfg.Database, zapLog)
	if err != nil {
		zapLog.Error("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return nil
	}
	if err := database.AutoMigrate(db); err != nil {
		zapLog.Error("failed to run migrations", zap.Error(err))
		return nil
	}
	if err := database.SeedAdmin(db, cfg.Admin, zapLog); err != nil {
		zapLog.Warn("failed to seed admin account", zap.Error(err))
	}
	return db
}
