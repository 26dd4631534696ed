package webhost

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/dialog"
)

// DefaultAutoPasteHook is the page-defined function receiving clipboard text.
const DefaultAutoPasteHook = "__autoPaste"

// MessageHandler receives bridge payloads: the page's JSON value, untyped.
type MessageHandler func(ctx context.Context, payload interface{})

// Options describe one hosted page.
type Options struct {
	Resource string
	Ext      string
	// Channel names the bridge channel; empty for a plain host.
	Channel   string
	OnMessage MessageHandler
	AutoPaste bool
}

// Host is one hosted page view.
type Host struct {
	id        string
	opts      Options
	dialogs   dialog.Handler
	clipboard Clipboard
	hook      string
	logger    *zap.SugaredLogger

	mu      sync.Mutex
	didLoad bool
}

// ID returns the host identifier used by the page shim.
func (h *Host) ID() string {
	return h.id
}

// Resource returns the hosted resource file name.
func (h *Host) Resource() string {
	return ResourceName(h.opts.Resource, h.opts.Ext)
}

// Dialogs returns the handler answering this page's dialogs.
func (h *Host) Dialogs() dialog.Handler {
	return h.dialogs
}

// IsBridge reports whether the host exposes a message channel.
func (h *Host) IsBridge() bool {
	return h.opts.Channel != ""
}

// Channel returns the bridge channel name.
func (h *Host) Channel() string {
	return h.opts.Channel
}

// Deliver hands a page message to the bridge handler. It reports false, dropping the
// message, when the host has no bridge or the channel does not match.
func (h *Host) Deliver(ctx context.Context, channel string, payload interface{}) bool {
	if !h.IsBridge() || channel != h.opts.Channel {
		h.logger.Debugw("bridge message dropped", "host_id", h.id, "channel", channel)
		return false
	}

	if h.opts.OnMessage != nil {
		h.opts.OnMessage(ctx, payload)
	}
	return true
}

// DidFinishLoad is called when the page finished loading. The first call per host
// returns the auto-paste script when the clipboard holds text; later calls never do.
func (h *Host) DidFinishLoad() (string, bool) {
	if !h.opts.AutoPaste {
		return "", false
	}

	h.mu.Lock()
	if h.didLoad {
		h.mu.Unlock()
		return "", false
	}
	h.didLoad = true
	h.mu.Unlock()

	text, err := h.clipboard.ReadText()
	if err != nil {
		h.logger.Debugw("clipboard not readable", "host_id", h.id, "error", err)
		return "", false
	}
	if text == "" {
		return "", false
	}

	h.logger.Debugw("auto-paste delivered", "host_id", h.id, "length", len(text))
	return AutoPasteScript(h.hook, text), true
}

// AutoPasteScript invokes hook with text if the page defines it.
func AutoPasteScript(hook, text string) string {
	return fmt.Sprintf("window.%[1]s && window.%[1]s(%[2]s);", hook, JSStringLiteral(text))
}
