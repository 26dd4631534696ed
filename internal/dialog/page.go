package dialog

import (
	"context"
	"fmt"
)

// PageRequest is a dialog raised by page script.
type PageRequest struct {
	Kind        Kind   `json:"kind" binding:"required"`
	Message     string `json:"message"`
	DefaultText string `json:"default_text"`
}

// PageResult is returned to page script: nil for alert, a bool for confirm,
// a string or nil for prompt.
type PageResult struct {
	Result interface{} `json:"result"`
}

// Dispatch runs a page dialog through h. When h fails the page still receives
// the kind's neutral value (alert resumes, confirm is false, prompt is null)
// and the error is returned for logging.
func Dispatch(ctx context.Context, h Handler, req PageRequest) (PageResult, error) {
	switch req.Kind {
	case KindAlert:
		return PageResult{}, h.Alert(ctx, req.Message)
	case KindConfirm:
		ok, err := h.Confirm(ctx, req.Message)
		return PageResult{Result: ok && err == nil}, err
	case KindPrompt:
		text, err := h.Prompt(ctx, req.Message, req.DefaultText)
		if err != nil || text == nil {
			return PageResult{}, err
		}
		return PageResult{Result: *text}, nil
	default:
		return PageResult{}, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}
}
