// Package docstore connects the MongoDB team store.
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/pkg/retry"
)

// Options locate the teams collection.
type Options struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// Store is a connected client and its teams collection.
type Store struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// Connect establishes a client, retrying until the primary answers a ping.
func Connect(ctx context.Context, opts Options, retryCfg retry.Config, logger *zap.SugaredLogger) (*Store, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	client, err := retry.DoWithResult(ctx, retryCfg, func() (*mongo.Client, error) {
		return dial(ctx, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	logger.Infow("connected to MongoDB", "database", opts.Database, "collection", opts.Collection)
	return &Store{
		Client:     client,
		Collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func dial(ctx context.Context, opts Options) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetServerSelectionTimeout(opts.ConnectTimeout))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return client, nil
}

// HealthCheck pings the primary.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Disconnect closes the client connection.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
