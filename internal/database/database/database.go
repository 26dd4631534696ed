// Package database opens and maintains the SQL team store connections.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/purpleworks/workshop/internal/database/config"
	"github.com/purpleworks/workshop/internal/database/pool"
	"github.com/purpleworks/workshop/pkg/retry"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
}

// NewPostgres connects to PostgreSQL, retrying transient failures.
func NewPostgres(ctx context.Context, cfg config.Config, retryCfg retry.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := config.BuildDSN(cfg)
	attempt := 0
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		attempt++
		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			logger.Warnw("database connection attempt failed",
				"attempt", attempt,
				"host", cfg.Host,
				"error", config.SanitizeError(err, cfg))
		}
		return db, err
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, pool.DefaultPoolConfig()); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	return db, nil
}

// NewSQLite opens a sqlite database file, or an in-memory one for ":memory:".
// Opening pings the file, so a database locked by another writer is retried.
func NewSQLite(ctx context.Context, path string, retryCfg retry.Config) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(config.SQLiteDSN(path)), gormConfig())
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, db); err != nil {
			_ = Close(db)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := pool.SetupConnectionPool(db, pool.SQLitePoolConfig()); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
