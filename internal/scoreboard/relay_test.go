package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisRelay_NotifyFallsBackToLocalFeed(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	feed := NewFeed(logger)
	ch, cancel := feed.Subscribe()
	defer cancel()
	relay := NewRedisRelay(unreachableRedis(t), "teams", feed, logger)

	relay.Notify(context.Background(), teamModel.Change{Kind: teamModel.ChangeDeleted, TeamID: "t9"})

	select {
	case got := <-ch:
		assert.Equal(t, teamModel.Change{Kind: teamModel.ChangeDeleted, TeamID: "t9"}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("change not delivered locally")
	}
}

func TestRedisRelay_HandleMessage(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	feed := NewFeed(logger)
	ch, cancel := feed.Subscribe()
	defer cancel()
	relay := NewRedisRelay(unreachableRedis(t), "teams", feed, logger)

	relay.handleMessage(context.Background(), "not json")
	assert.Len(t, ch, 0)

	relay.handleMessage(context.Background(), `{"kind":"replaced"}`)
	got := <-ch
	assert.Equal(t, teamModel.ChangeReplaced, got.Kind)
	assert.Empty(t, got.TeamID)
}

func TestRedisRelay_RunFailsWithoutServer(t *testing.T) {
	relay := NewRedisRelay(unreachableRedis(t), "teams", NewFeed(zaptest.NewLogger(t).Sugar()), zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, relay.Run(ctx))
}

func TestNewRedisClient(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		client, err := NewRedisClient(context.Background(), "", "", 0)
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("unreachable", func(t *testing.T) {
		client, err := NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "127.0.0.1:1")
	})
}
