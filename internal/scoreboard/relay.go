package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// RedisRelay publishes store changes on a Redis channel and replays every change
// received on that channel into the local feed, so all instances sharing a store
// refresh their viewers.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	local   *Feed
	logger  *zap.SugaredLogger
}

// NewRedisClient creates a Redis client and verifies the server answers.
func NewRedisClient(ctx context.Context, addr, password string, db int) (redis.UniversalClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  6 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisRelay creates a relay between the Redis channel and the local feed.
func NewRedisRelay(client redis.UniversalClient, channel string, local *Feed, logger *zap.SugaredLogger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		local:   local,
		logger:  logger,
	}
}

// Notify publishes the change. When Redis is unreachable the change is delivered locally only.
func (r *RedisRelay) Notify(ctx context.Context, change teamModel.Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		r.logger.Errorw("failed to encode store change", "error", err)
		r.local.Notify(ctx, change)
		return
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warnw("failed to publish store change, delivering locally", "channel", r.channel, "error", err)
		r.local.Notify(ctx, change)
	}
}

// Run forwards channel messages to the local feed until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}
	r.logger.Infow("store change relay started", "channel", r.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.handleMessage(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) handleMessage(ctx context.Context, payload string) {
	var change teamModel.Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		r.logger.Debugw("dropping malformed store change", "payload", payload, "error", err)
		return
	}
	r.local.Notify(ctx, change)
}
