package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/config"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/infrastructure/database"
	"github.com/fazli/printshop-api/internal/infrastructure/logger"
	"github.com/fazli/printshop-api/internal/infrastructure/metrics"
	"github.com/fazli/printshop-api/internal/infrastructure/repository"
	"github.com/fazli/printshop-api/internal/infrastructure/scheduler"
	"github.com/fazli/printshop-api/internal/presentation/http/handler"
	"github.com/fazli/printshop-api/internal/presentation/http/middleware"
	"github.com/fazli/printshop-api/internal/presentation/http/routes"
	"github.com/fazli/printshop-api/pkg/printer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	jobTimeout      = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	logCfg := logger.ConfigForEnvironment(cfg.App.Env, cfg.Log.Level)
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	log := logger.New(logCfg).With(zap.String("service", cfg.App.Name))
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	remainingRepo := repository.NewRemainingRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	m := metrics.New()

	// Initialize services
	ownerRule := cfg.Owners.OwnerRule()
	syncService := service.NewSyncService(txRepo, productRepo, log, m)
	productService := service.NewProductService(productRepo, syncService, ownerRule)
	transactionService := service.NewTransactionService(txRepo, syncService)
	ledgerService := service.NewLedgerService(ledgerRepo)
	remainingService := service.NewRemainingService(remainingRepo)
	dashboardService := service.NewDashboardService(txRepo, productRepo)
	reportService := service.NewReportService(dashboardService, ledgerService)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer func() { _ = thermalPrinter.Close() }()
	printerService := service.NewPrinterService(
		thermalPrinter,
		productRepo,
		entity.ReceiptHeader{ShopName: cfg.Shop.Name, Address: cfg.Shop.Address, Phone: cfg.Shop.Phone},
		cfg.Printer.Type,
		cfg.Printer.Width,
		log,
	)

	// Background jobs, both off unless a schedule is configured
	jobs := scheduler.New(log, jobTimeout)
	if err := jobs.Add("reconcile", cfg.Reconcile.Schedule, func(ctx context.Context) error {
		_, err := syncService.Reconcile(ctx)
		return err
	}); err != nil {
		log.Fatal("invalid reconcile schedule", zap.String("schedule", cfg.Reconcile.Schedule), zap.Error(err))
	}
	if err := jobs.Add("idempotency-cleanup", cfg.Idempotency.CleanupSchedule, func(ctx context.Context) error {
		n, err := idempotencyRepo.DeleteExpired(ctx)
		if err == nil && n > 0 {
			log.Debug("expired idempotency keys removed", zap.Int64("count", n))
		}
		return err
	}); err != nil {
		log.Fatal("invalid idempotency cleanup schedule", zap.String("schedule", cfg.Idempotency.CleanupSchedule), zap.Error(err))
	}
	jobs.Start()

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:     handler.NewProductHandler(productService, printerService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Ledger:      handler.NewLedgerHandler(ledgerService),
		Remaining:   handler.NewRemainingHandler(remainingService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Report:      handler.NewReportHandler(reportService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		Metrics:         m,
		RateLimiter:     rateLimiter,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	jobs.Stop()
	rateLimiter.Stop()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
