package editor

import (
	"strconv"

	"github.com/purpleworks/workshop/internal/color"
)

// Swatch is one palette preset as shown in the form.
type Swatch struct {
	Index    int    `json:"index"`
	Hex      string `json:"hex"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// State is the serializable form state of an editor.
type State struct {
	Mode        Mode     `json:"mode"`
	TeamID      string   `json:"team_id,omitempty"`
	Title       string   `json:"title"`
	SubmitLabel string   `json:"submit_label"`
	CancelLabel string   `json:"cancel_label"`
	Name        string   `json:"name"`
	ColorHex    string   `json:"color_hex"`
	Palette     []Swatch `json:"palette"`
	CanSubmit   bool     `json:"can_submit"`
	Open        bool     `json:"open"`
}

// State snapshots the form.
func (e *Editor) State() State {
	st := State{
		Mode:        e.mode,
		TeamID:      e.teamID,
		Title:       "Add Team",
		SubmitLabel: "Add",
		CancelLabel: "Close",
		Name:        e.name,
		ColorHex:    e.color.Hex(),
		Palette:     make([]Swatch, 0, len(color.Palette)),
		CanSubmit:   e.CanSubmit(),
		Open:        e.open,
	}
	if e.mode == ModeEdit {
		st.Title = "Edit Team"
		st.SubmitLabel = "Save"
	}

	for i, c := range color.Palette {
		st.Palette = append(st.Palette, Swatch{
			Index:    i,
			Hex:      c.Hex(),
			Label:    swatchLabel(i),
			Selected: e.IsSwatchSelected(i),
		})
	}
	return st
}

func swatchLabel(i int) string {
	return "Color " + strconv.Itoa(i+1)
}
