// Package dialog stands in natively for the alert, confirm and prompt dialogs raised by hosted pages.
package dialog

import (
	"context"
	"errors"
	"time"
)

// Kind is the page dialog category.
type Kind string

// Page dialog kinds.
const (
	KindAlert   Kind = "alert"
	KindConfirm Kind = "confirm"
	KindPrompt  Kind = "prompt"
)

// Action labels, in presentation order.
const (
	ActionOK     = "OK"
	ActionCancel = "Cancel"
)

// confirmAction is the index of the affirmative action in two-button dialogs.
const confirmAction = 1

var (
	// ErrDialogNotFound indicates that the dialog was already resolved or never existed.
	ErrDialogNotFound = errors.New("dialog not found")
	// ErrInvalidAction indicates an answer naming an action the dialog does not offer.
	ErrInvalidAction = errors.New("invalid dialog action")
	// ErrInvalidKind indicates an unknown dialog kind.
	ErrInvalidKind = errors.New("invalid dialog kind")
)

// Handler shows page dialogs and returns the user's choice to the page.
type Handler interface {
	// Alert shows a message with a single acknowledgement.
	Alert(ctx context.Context, message string) error
	// Confirm reports whether the affirmative option was chosen.
	Confirm(ctx context.Context, message string) (bool, error)
	// Prompt returns the entered text, or nil when cancelled.
	Prompt(ctx context.Context, message, defaultText string) (*string, error)
}

// Request is a native modal waiting for an answer.
type Request struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	Kind        Kind      `json:"kind"`
	Message     string    `json:"message"`
	Actions     []string  `json:"actions"`
	TextField   bool      `json:"text_field"`
	DefaultText string    `json:"default_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Response is the user's answer to a modal.
// Text carries the text field content; nil means the field was left untouched.
type Response struct {
	Action int     `json:"action"`
	Text   *string `json:"text,omitempty"`
}

// Presenter shows a native modal and waits for the chosen action.
type Presenter interface {
	Present(ctx context.Context, req Request) (Response, error)
}
