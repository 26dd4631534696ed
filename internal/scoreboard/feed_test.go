package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

func TestFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out to every subscriber", func(t *testing.T) {
		feed := NewFeed(zaptest.NewLogger(t).Sugar())
		a, cancelA := feed.Subscribe()
		defer cancelA()
		b, cancelB := feed.Subscribe()
		defer cancelB()

		feed.Notify(ctx, teamModel.Change{Kind: teamModel.ChangeScored, TeamID: "t1"})

		for _, ch := range []<-chan teamModel.Change{a, b} {
			select {
			case got := <-ch:
				assert.Equal(t, teamModel.ChangeScored, got.Kind)
				assert.Equal(t, "t1", got.TeamID)
			case <-time.After(time.Second):
				t.Fatal("change not delivered")
			}
		}
	})

	t.Run("slow subscriber does not block publishers", func(t *testing.T) {
		feed := NewFeed(zaptest.NewLogger(t).Sugar())
		ch, cancel := feed.Subscribe()
		defer cancel()

		for i := 0; i < 10; i++ {
			feed.Notify(ctx, teamModel.Change{Kind: teamModel.ChangeScored})
		}

		assert.Len(t, ch, 1)
	})

	t.Run("unsubscribe closes channel once", func(t *testing.T) {
		feed := NewFeed(zaptest.NewLogger(t).Sugar())
		ch, cancel := feed.Subscribe()
		require.Equal(t, 1, feed.Subscribers())

		cancel()
		cancel()

		_, ok := <-ch
		assert.False(t, ok)
		assert.Equal(t, 0, feed.Subscribers())
		feed.Notify(ctx, teamModel.Change{Kind: teamModel.ChangeReset})
	})
}
