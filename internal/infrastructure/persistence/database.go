package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/infrastructure/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the embedded SQLite connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the shop's local SQLite store
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithLogger(cfg, gormlogger.Default.LogMode(gormlogger.Silent))
}

// NewDatabaseWithLogger opens the store with a custom GORM logger
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gl gormlogger.Interface) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Migrate creates or updates the schema for all aggregates
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&numbering.Counter{},
		&sales.Bill{},
		&sales.PaymentLine{},
		&sales.KitchenOrderTicket{},
		&sales.KOTItem{},
		&finance.ExpenseVoucher{},
		&finance.AdvanceReceipt{},
		&partner.Customer{},
		&partner.AdvanceTransaction{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// txKey is the context key carrying an in-flight transaction
type txKey struct{}

// InTransaction implements shared.TxManager. Repository calls made with the
// context passed to fn join the same transaction.
func (d *Database) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction bound to the context, or the fallback
// connection when no transaction is in flight
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
