// Package migrate applies the team store schema migrations.
package migrate

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/purpleworks/workshop/internal/database/config"
)

// Dialects with bundled migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var bundled embed.FS

// GetMigrationsPath returns the directory overriding the bundled migrations.
// An empty result means the bundled migrations are used.
func GetMigrationsPath() string {
	return config.GetEnv("MIGRATIONS_PATH", "")
}

// Bundled returns the bundled migrations of a dialect.
func Bundled(dialect string) (fs.FS, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(bundled, "migrations/"+dialect)
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Migrate applies pending migrations of the dialect to the database.
func Migrate(db *gorm.DB, dialect string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	case DialectSQLite:
		driver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported migration dialect: %s", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s driver: %w", dialect, err)
	}

	m, err := newMigrate(dialect, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func newMigrate(dialect string, driver database.Driver) (*migrate.Migrate, error) {
	if dir := GetMigrationsPath(); dir != "" {
		migrationsPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
		}
		if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
		}
		return migrate.NewWithDatabaseInstance("file://"+migrationsPath, dialect, driver)
	}

	fsys, err := Bundled(dialect)
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled migrations: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, dialect, driver)
}
