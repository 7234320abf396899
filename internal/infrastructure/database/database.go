package database

import (
	"fmt"

	"github.com/fazli/printshop-api/internal/config"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database driver.
func Open(cfg *config.DatabaseConfig, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(logLevel)),
	}

	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath, gormCfg)
	case "postgres", "":
		return NewPostgresDB(cfg, gormCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q (use postgres or sqlite)", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// NewSQLiteDB opens a SQLite database file, or a private in-memory one for ":memory:".
func NewSQLiteDB(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own empty database.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Orders
		&entity.Product{},
		&entity.BuyItem{},
		&entity.PartialPayment{},

		// Cash and bookkeeping
		&entity.Transaction{},
		&entity.LedgerEntry{},
		&entity.RemainingRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
