// Package editor models the team editor dialog used for both adding and editing teams.
package editor

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/purpleworks/workshop/internal/color"
	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// Mode is the editor presentation mode.
type Mode string

// Editor modes.
const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

var (
	// ErrSubmitBlocked indicates that the form cannot be submitted in its current state.
	ErrSubmitBlocked = errors.New("submit is disabled")
	// ErrClosed indicates that the editor was already dismissed.
	ErrClosed = errors.New("editor is closed")
)

// SubmitFunc applies the final name and color. The caller decides whether that inserts
// a new team or mutates an existing one.
type SubmitFunc func(name string, c color.Color) error

// Editor holds the state of one presented editor dialog.
type Editor struct {
	mode   Mode
	teamID string
	name   string
	color  color.Color
	open   bool
}

// NewAdd opens an editor in add mode with a blank name and a random palette color.
func NewAdd(rng *rand.Rand) *Editor {
	return &Editor{
		mode:  ModeAdd,
		color: color.Random(rng),
		open:  true,
	}
}

// NewEdit opens an editor in edit mode pre-filled from the team.
func NewEdit(team *teamModel.Team) *Editor {
	return &Editor{
		mode:   ModeEdit,
		teamID: team.ID,
		name:   team.Name,
		color:  team.Color(),
		open:   true,
	}
}

// Mode returns the presentation mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// TeamID returns the edited team id, empty in add mode.
func (e *Editor) TeamID() string {
	return e.teamID
}

// Name returns the current name field.
func (e *Editor) Name() string {
	return e.name
}

// Color returns the current color selection.
func (e *Editor) Color() color.Color {
	return e.color
}

// IsOpen reports whether the dialog is still presented.
func (e *Editor) IsOpen() bool {
	return e.open
}

// SetName replaces the name field.
func (e *Editor) SetName(name string) {
	e.name = name
}

// SelectSwatch picks the palette preset at index i.
func (e *Editor) SelectSwatch(i int) error {
	if i < 0 || i >= len(color.Palette) {
		return teamModel.ErrInvalidColor
	}
	e.color = color.Palette[i]
	return nil
}

// PickColor sets a free-form color.
func (e *Editor) PickColor(c color.Color) {
	e.color = c
}

// IsSwatchSelected reports whether the palette preset at index i is the current color.
// Colors are compared by their hex encoding.
func (e *Editor) IsSwatchSelected(i int) bool {
	if i < 0 || i >= len(color.Palette) {
		return false
	}
	return color.SameHex(color.Palette[i], e.color)
}

// CanSubmit reports whether the submit action is enabled.
// Add mode requires a non-blank name; edit mode is always enabled.
func (e *Editor) CanSubmit() bool {
	if !e.open {
		return false
	}
	if e.mode == ModeAdd {
		return strings.TrimSpace(e.name) != ""
	}
	return true
}

// Apply copies a submitted form onto the editor. A swatch wins over a free-form color.
func (e *Editor) Apply(req *teamModel.SubmitTeamRequest) error {
	e.SetName(req.Name)

	switch {
	case req.Swatch != nil:
		return e.SelectSwatch(*req.Swatch)
	case req.Color != nil:
		c, ok := color.ParseHex(*req.Color)
		if !ok {
			return teamModel.ErrInvalidColor
		}
		e.PickColor(c)
	}
	return nil
}

// Submit invokes fn with the current name and color and closes the dialog.
// The dialog closes even when fn fails; the error is returned to the caller.
func (e *Editor) Submit(fn SubmitFunc) error {
	if !e.open {
		return ErrClosed
	}
	if !e.CanSubmit() {
		return ErrSubmitBlocked
	}
	e.open = false
	return fn(e.name, e.color)
}

// Cancel closes the dialog without submitting.
func (e *Editor) Cancel() {
	e.open = false
}
