package dialog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/pkg/timeprovider"
)

type pendingDialog struct {
	req    Request
	answer chan Response
}

// Broker presents modals to an operator: requests stay pending until answered
// or until the waiting caller gives up.
type Broker struct {
	mu      sync.Mutex
	pending map[string]*pendingDialog
	watches map[chan struct{}]struct{}
	timeout time.Duration
	clock   timeprovider.TimeProvider
	logger  *zap.SugaredLogger
}

var _ Presenter = (*Broker)(nil)

// NewBroker creates a broker. A positive timeout bounds every wait.
func NewBroker(timeout time.Duration, clock timeprovider.TimeProvider, logger *zap.SugaredLogger) *Broker {
	if clock == nil {
		clock = timeprovider.New()
	}
	return &Broker{
		pending: make(map[string]*pendingDialog),
		watches: make(map[chan struct{}]struct{}),
		timeout: timeout,
		clock:   clock,
		logger:  logger,
	}
}

// Present registers the request and blocks until it is answered or ctx ends.
func (b *Broker) Present(ctx context.Context, req Request) (Response, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	req.ID = uuid.NewString()
	req.CreatedAt = b.clock.Now()
	p := &pendingDialog{req: req, answer: make(chan Response, 1)}

	b.mu.Lock()
	b.pending[req.ID] = p
	b.notifyLocked()
	b.mu.Unlock()

	b.logger.Infow("dialog presented", "dialog_id", req.ID, "host_id", req.HostID, "kind", req.Kind)

	select {
	case resp := <-p.answer:
		return resp, nil
	case <-ctx.Done():
		b.mu.Lock()
		defer b.mu.Unlock()

		// Answer sends while holding the lock, so an answer that won the race is already buffered.
		select {
		case resp := <-p.answer:
			return resp, nil
		default:
		}

		delete(b.pending, req.ID)
		b.notifyLocked()
		b.logger.Warnw("dialog abandoned", "dialog_id", req.ID, "host_id", req.HostID, "error", ctx.Err())
		return Response{}, ctx.Err()
	}
}

// Watch returns a channel signalled whenever the pending set changes, and a function
// that stops the signals. Bursts of changes may collapse into one signal.
func (b *Broker) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.watches[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.watches, ch)
		b.mu.Unlock()
	}
}

func (b *Broker) notifyLocked() {
	for ch := range b.watches {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Pending lists unanswered requests, oldest first.
func (b *Broker) Pending() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Request, 0, len(b.pending))
	for _, p := range b.pending {
		out = append(out, p.req)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Answer resolves a pending request with the chosen action.
func (b *Broker) Answer(id string, resp Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pending[id]
	if !ok {
		return ErrDialogNotFound
	}
	if resp.Action < 0 || resp.Action >= len(p.req.Actions) {
		return ErrInvalidAction
	}

	delete(b.pending, id)
	p.answer <- resp
	b.notifyLocked()
	b.logger.Infow("dialog answered", "dialog_id", id, "action", p.req.Actions[resp.Action])
	return nil
}
