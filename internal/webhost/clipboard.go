package webhost

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable indicates that the system clipboard cannot be reached.
var ErrClipboardUnavailable = errors.New("system clipboard unavailable")

// Clipboard is a text clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// MemoryClipboard keeps clipboard text in process.
type MemoryClipboard struct {
	mu   sync.RWMutex
	text string
}

// NewMemoryClipboard creates an in-process clipboard holding text.
func NewMemoryClipboard(text string) *MemoryClipboard {
	return &MemoryClipboard{text: text}
}

// ReadText returns the current text.
func (m *MemoryClipboard) ReadText() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text, nil
}

// WriteText replaces the current text.
func (m *MemoryClipboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// SystemClipboard reads and writes the clipboard of the machine running the service.
type SystemClipboard struct{}

// ReadText returns the system clipboard text.
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	return clipboard.ReadAll()
}

// WriteText replaces the system clipboard text.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}
