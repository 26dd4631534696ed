// Package pool configures connection pools of the SQL team stores.
package pool

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Config holds database connection pool configuration.
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig is the pool of the postgres store. The scoreboard is
// served to a handful of clients, so a small pool is plenty.
func DefaultPoolConfig() Config {
	return Config{
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// SQLitePoolConfig returns a single connection pool for sqlite stores.
// One long-lived connection serializes writers and keeps in-memory databases alive.
func SQLitePoolConfig() Config {
	return Config{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Validate checks the limits against each other.
func (c Config) Validate() error {
	switch {
	case c.MaxOpenConns <= 0:
		return fmt.Errorf("MaxOpenConns must be greater than 0")
	case c.MaxIdleConns < 0:
		return fmt.Errorf("MaxIdleConns must be non-negative")
	case c.MaxIdleConns > c.MaxOpenConns:
		return fmt.Errorf("MaxIdleConns (%d) cannot be greater than MaxOpenConns (%d)",
			c.MaxIdleConns, c.MaxOpenConns)
	case c.ConnMaxLifetime < 0 || c.ConnMaxIdleTime < 0:
		return fmt.Errorf("connection lifetimes must be non-negative")
	}
	return nil
}

// SetupConnectionPool applies poolCfg to the sql.DB behind db.
func SetupConnectionPool(db *gorm.DB, poolCfg Config) error {
	if err := poolCfg.Validate(); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(poolCfg.ConnMaxIdleTime)

	return nil
}
