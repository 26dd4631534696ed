package dialog

import "context"

// Interceptor maps page dialogs onto native modals shown by a Presenter.
type Interceptor struct {
	presenter Presenter
	hostID    string
}

var _ Handler = (*Interceptor)(nil)

// NewInterceptor creates the dialog handler for one hosted page.
func NewInterceptor(presenter Presenter, hostID string) *Interceptor {
	return &Interceptor{presenter: presenter, hostID: hostID}
}

// Alert shows the message with a single OK action.
func (i *Interceptor) Alert(ctx context.Context, message string) error {
	_, err := i.presenter.Present(ctx, Request{
		HostID:  i.hostID,
		Kind:    KindAlert,
		Message: message,
		Actions: []string{ActionOK},
	})
	return err
}

// Confirm shows Cancel and OK and reports whether OK was chosen.
func (i *Interceptor) Confirm(ctx context.Context, message string) (bool, error) {
	resp, err := i.presenter.Present(ctx, Request{
		HostID:  i.hostID,
		Kind:    KindConfirm,
		Message: message,
		Actions: []string{ActionCancel, ActionOK},
	})
	if err != nil {
		return false, err
	}
	return resp.Action == confirmAction, nil
}

// Prompt shows a text field pre-filled with defaultText plus Cancel and OK.
// OK yields the entered text, or defaultText when the field was left untouched.
func (i *Interceptor) Prompt(ctx context.Context, message, defaultText string) (*string, error) {
	resp, err := i.presenter.Present(ctx, Request{
		HostID:      i.hostID,
		Kind:        KindPrompt,
		Message:     message,
		Actions:     []string{ActionCancel, ActionOK},
		TextField:   true,
		DefaultText: defaultText,
	})
	if err != nil {
		return nil, err
	}
	if resp.Action != confirmAction {
		return nil, nil
	}

	text := defaultText
	if resp.Text != nil {
		text = *resp.Text
	}
	return &text, nil
}
