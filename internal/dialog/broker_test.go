package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/purpleworks/workshop/pkg/timeprovider"
)

func newTestBroker(t *testing.T, timeout time.Duration) *Broker {
	t.Helper()
	clock := &timeprovider.Fixed{Current: time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC), Step: time.Second}
	return NewBroker(timeout, clock, zaptest.NewLogger(t).Sugar())
}

func waitPending(t *testing.T, b *Broker, n int) []Request {
	t.Helper()
	require.Eventually(t, func() bool { return len(b.Pending()) == n }, 2*time.Second, 5*time.Millisecond)
	return b.Pending()
}

func TestBroker_ConfirmAnsweredAffirmatively(t *testing.T) {
	broker := newTestBroker(t, 0)
	interceptor := NewInterceptor(broker, "h1")

	result := make(chan bool, 1)
	go func() {
		ok, err := interceptor.Confirm(context.Background(), "proceed?")
		assert.NoError(t, err)
		result <- ok
	}()

	pending := waitPending(t, broker, 1)
	assert.Equal(t, "proceed?", pending[0].Message)
	assert.Equal(t, "h1", pending[0].HostID)
	require.NoError(t, broker.Answer(pending[0].ID, Response{Action: 1}))

	select {
	case ok := <-result:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("confirm did not return")
	}
	assert.Empty(t, broker.Pending())
}

func TestBroker_Answer(t *testing.T) {
	t.Run("unknown dialog", func(t *testing.T) {
		broker := newTestBroker(t, 0)

		assert.ErrorIs(t, broker.Answer("missing", Response{}), ErrDialogNotFound)
	})

	t.Run("action out of range keeps dialog pending", func(t *testing.T) {
		broker := newTestBroker(t, 0)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = NewInterceptor(broker, "h1").Alert(ctx, "hi") }()

		pending := waitPending(t, broker, 1)

		assert.ErrorIs(t, broker.Answer(pending[0].ID, Response{Action: 1}), ErrInvalidAction)
		assert.ErrorIs(t, broker.Answer(pending[0].ID, Response{Action: -1}), ErrInvalidAction)
		assert.Len(t, broker.Pending(), 1)
	})
}

func TestBroker_PendingOrder(t *testing.T) {
	broker := newTestBroker(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = NewInterceptor(broker, "h1").Alert(ctx, "first") }()
	waitPending(t, broker, 1)
	go func() { _ = NewInterceptor(broker, "h2").Alert(ctx, "second") }()

	pending := waitPending(t, broker, 2)
	assert.Equal(t, "first", pending[0].Message)
	assert.Equal(t, "second", pending[1].Message)
}

func TestBroker_ContextEnd(t *testing.T) {
	t.Run("cancelled caller is removed", func(t *testing.T) {
		broker := newTestBroker(t, 0)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			_, err := broker.Present(ctx, Request{Kind: KindAlert, Actions: []string{ActionOK}})
			done <- err
		}()
		waitPending(t, broker, 1)
		cancel()

		assert.ErrorIs(t, <-done, context.Canceled)
		assert.Empty(t, broker.Pending())
	})

	t.Run("wait timeout", func(t *testing.T) {
		broker := newTestBroker(t, 20*time.Millisecond)

		ok, err := NewInterceptor(broker, "h1").Confirm(context.Background(), "proceed?")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, ok)
		assert.Empty(t, broker.Pending())
	})
}

func TestBroker_AnswerRacingContextEnd(t *testing.T) {
	for i := 0; i < 50; i++ {
		broker := newTestBroker(t, 0)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan Response, 1)
		go func() {
			resp, err := broker.Present(ctx, Request{Kind: KindConfirm, Actions: []string{ActionCancel, ActionOK}})
			assert.NoError(t, err)
			done <- resp
		}()
		id := waitPending(t, broker, 1)[0].ID

		// Both the answer and the context end are ready before Present wakes up.
		broker.mu.Lock()
		p := broker.pending[id]
		delete(broker.pending, id)
		p.answer <- Response{Action: 1}
		cancel()
		broker.mu.Unlock()

		select {
		case resp := <-done:
			assert.Equal(t, 1, resp.Action)
		case <-time.After(2 * time.Second):
			t.Fatal("present did not return")
		}
	}
}

func TestBroker_Watch(t *testing.T) {
	broker := newTestBroker(t, 0)
	changes, stop := broker.Watch()
	defer stop()

	go func() { _ = NewInterceptor(broker, "h1").Alert(context.Background(), "hi") }()

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal for presented dialog")
	}
	pending := waitPending(t, broker, 1)

	require.NoError(t, broker.Answer(pending[0].ID, Response{Action: 0}))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal for answered dialog")
	}
	assert.Empty(t, broker.Pending())
}
