package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/config"
	"github.com/purpleworks/workshop/internal/database/database"
	"github.com/purpleworks/workshop/internal/database/docstore"
	"github.com/purpleworks/workshop/internal/database/migrate"
	"github.com/purpleworks/workshop/internal/health"
	"github.com/purpleworks/workshop/internal/team/repository"
)

// teamStore is an opened team repository with its health check and shutdown hook.
type teamStore struct {
	repo  repository.Repository
	check health.Check
	close func(ctx context.Context) error
}

// openStore connects the configured backend and brings its schema up to date.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.SugaredLogger) (*teamStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLitePath, cfg.Retry)
		if err != nil {
			return nil, err
		}
		if err := migrate.Migrate(db, migrate.DialectSQLite); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		logger.Infow("team store ready", "driver", cfg.Driver, "path", cfg.SQLitePath)
		return &teamStore{
			repo:  repository.New(db, logger),
			check: health.DatabaseCheck(db),
			close: func(context.Context) error { return database.Close(db) },
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres, cfg.Retry, logger)
		if err != nil {
			return nil, err
		}
		if err := migrate.Migrate(db, migrate.DialectPostgres); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		logger.Infow("team store ready", "driver", cfg.Driver, "host", cfg.Postgres.Host, "database", cfg.Postgres.DBName)
		return &teamStore{
			repo:  repository.New(db, logger),
			check: health.DatabaseCheck(db),
			close: func(context.Context) error { return database.Close(db) },
		}, nil

	case config.DriverMongo:
		st, err := docstore.Connect(ctx, docstore.Options{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			Collection:     cfg.Mongo.Collection,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		}, cfg.Retry, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureIndexes(ctx, st.Collection); err != nil {
			_ = st.Disconnect(context.Background())
			return nil, err
		}
		logger.Infow("team store ready", "driver", cfg.Driver, "database", cfg.Mongo.Database)
		return &teamStore{
			repo:  repository.NewMongo(st.Client, st.Collection, logger),
			check: st.HealthCheck,
			close: st.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
