package config

import (
	"fmt"
	"time"

	dbconfig "github.com/purpleworks/workshop/internal/database/config"
	"github.com/purpleworks/workshop/pkg/retry"
)

// Supported team store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StoreConfig selects and configures the team store backend.
type StoreConfig struct {
	// Driver is the store backend (sqlite, postgres, mongo).
	Driver string
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string
	// Postgres holds connection settings for the postgres driver.
	Postgres dbconfig.Config
	// Retry controls connection attempts for the selected driver.
	Retry retry.Config
	// Mongo holds connection settings for the mongo driver.
	Mongo MongoConfig
}

// MongoConfig holds document store connection configuration.
type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// LoadStoreConfigFromEnv loads store configuration from environment variables.
func LoadStoreConfigFromEnv() StoreConfig {
	driver := GetEnv("STORE_DRIVER", DriverSQLite)
	return StoreConfig{
		Driver:     driver,
		SQLitePath: GetEnv("SQLITE_PATH", "workshop.db"),
		Postgres:   dbconfig.LoadConfigFromEnv(),
		Retry:      dbconfig.LoadRetryConfigFromEnv(retryPolicy(driver)),
		Mongo: MongoConfig{
			URI:            GetEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database:       GetEnv("MONGO_DATABASE", "workshop"),
			Collection:     GetEnv("MONGO_COLLECTION", "teams"),
			ConnectTimeout: GetEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
	}
}

// retryPolicy returns the connection retry defaults for a driver.
func retryPolicy(driver string) retry.Config {
	switch driver {
	case DriverMongo:
		return retry.MongoConfig()
	case DriverSQLite:
		return retry.SQLiteConfig()
	default:
		return retry.PostgresConfig()
	}
}

// Validate validates store configuration for the selected driver only.
func (c StoreConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME must not be empty")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI must not be empty")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION must not be empty")
		}
		if c.Mongo.ConnectTimeout <= 0 {
			return fmt.Errorf("MONGO_CONNECT_TIMEOUT must be greater than 0")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %s (must be: sqlite, postgres, mongo)", c.Driver)
	}

	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("DB_RETRY_MAX_ATTEMPTS must be greater than 0")
	}
	return nil
}
