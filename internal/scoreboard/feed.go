package scoreboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// Subscriber hands out change subscriptions.
type Subscriber interface {
	Subscribe() (<-chan teamModel.Change, func())
}

// Feed fans store changes out to in-process subscribers.
// Each subscriber buffers at most one pending change; later changes coalesce into it.
type Feed struct {
	mu     sync.Mutex
	subs   map[int]chan teamModel.Change
	nextID int
	logger *zap.SugaredLogger
}

// NewFeed creates an empty feed.
func NewFeed(logger *zap.SugaredLogger) *Feed {
	return &Feed{
		subs:   make(map[int]chan teamModel.Change),
		logger: logger,
	}
}

// Notify delivers the change to every subscriber without blocking.
func (f *Feed) Notify(_ context.Context, change teamModel.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- change:
		default:
		}
	}
	f.logger.Debugw("store change published", "kind", change.Kind, "team_id", change.TeamID, "subscribers", len(f.subs))
}

// Subscribe registers a subscriber. The returned func unsubscribes and closes the channel.
func (f *Feed) Subscribe() (<-chan teamModel.Change, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan teamModel.Change, 1)
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
