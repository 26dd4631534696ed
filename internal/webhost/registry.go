package webhost

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/dialog"
)

// DefaultMaxHosts bounds the number of live hosts kept by a registry.
const DefaultMaxHosts = 256

// RegistryConfig configures a host registry.
type RegistryConfig struct {
	Bundle    *Bundle
	Presenter dialog.Presenter
	Clipboard Clipboard
	// AutoPasteHook overrides DefaultAutoPasteHook.
	AutoPasteHook string
	// MaxHosts overrides DefaultMaxHosts; the oldest host is closed first.
	MaxHosts int
}

// Registry keeps the live page hosts.
type Registry struct {
	cfg    RegistryConfig
	logger *zap.SugaredLogger

	mu    sync.Mutex
	hosts map[string]*Host
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig, logger *zap.SugaredLogger) *Registry {
	if cfg.AutoPasteHook == "" {
		cfg.AutoPasteHook = DefaultAutoPasteHook
	}
	if cfg.MaxHosts <= 0 {
		cfg.MaxHosts = DefaultMaxHosts
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = NewMemoryClipboard("")
	}
	return &Registry{
		cfg:    cfg,
		logger: logger,
		hosts:  make(map[string]*Host),
	}
}

// Clipboard returns the clipboard shared by all hosts.
func (r *Registry) Clipboard() Clipboard {
	return r.cfg.Clipboard
}

// Open creates and registers a host for one page view.
func (r *Registry) Open(opts Options) *Host {
	id := uuid.NewString()
	h := &Host{
		id:        id,
		opts:      opts,
		dialogs:   dialog.NewInterceptor(r.cfg.Presenter, id),
		clipboard: r.cfg.Clipboard,
		hook:      r.cfg.AutoPasteHook,
		logger:    r.logger,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.hosts[id] = h
	r.order = append(r.order, id)
	for len(r.order) > r.cfg.MaxHosts {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.hosts, oldest)
	}

	r.logger.Debugw("page host opened", "host_id", id, "resource", h.Resource(), "channel", opts.Channel)
	return h
}

// Get returns a live host.
func (r *Registry) Get(id string) (*Host, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hosts[id]
	return h, ok
}

// Close removes a host. It reports whether the host was live.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[id]; !ok {
		return false
	}
	delete(r.hosts, id)
	for i, hid := range r.order {
		if hid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live hosts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hosts)
}

// Render resolves the host's page and injects the shim. found is false when the
// fallback page was rendered instead.
func (r *Registry) Render(h *Host) (page []byte, found bool) {
	page, found = r.cfg.Bundle.Resolve(h.opts.Resource, h.opts.Ext)
	if !found {
		r.logger.Warnw("bundled page missing", "resource", h.Resource(), "host_id", h.id)
	}
	return Inject(page, h.id, h.opts.Channel, h.hook), found
}
