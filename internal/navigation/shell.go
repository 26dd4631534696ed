// Package navigation presents the app destinations as a single-selection master/detail shell.
package navigation

import "errors"

// Destination identifies one detail view.
type Destination string

// Destinations, in sidebar order.
const (
	RandomTeam    Destination = "random-team"
	ScoreboardWeb Destination = "scoreboard-web"
	Scoreboard    Destination = "scoreboard"
	Etc           Destination = "etc"
)

// DefaultDestination is selected at launch.
const DefaultDestination = RandomTeam

// ErrUnknownDestination indicates a destination outside the sidebar.
var ErrUnknownDestination = errors.New("unknown destination")

// Entry is one sidebar item.
type Entry struct {
	ID    Destination `json:"id"`
	Title string      `json:"title"`
	Icon  string      `json:"icon"`
}

// Entries lists the sidebar.
var Entries = []Entry{
	{ID: RandomTeam, Title: "Random Teams", Icon: "person.3"},
	{ID: ScoreboardWeb, Title: "Scoreboard (Web)", Icon: "globe"},
	{ID: Scoreboard, Title: "Scoreboard", Icon: "list.number"},
	{ID: Etc, Title: "More", Icon: "ellipsis.circle"},
}

// Lookup returns the sidebar entry for d.
func Lookup(d Destination) (Entry, bool) {
	for _, e := range Entries {
		if e.ID == d {
			return e, true
		}
	}
	return Entry{}, false
}

// URL is where the destination's detail view is rendered.
func URL(d Destination) string {
	return "/app/" + string(d)
}

// Shell holds one client's selection. Exactly one destination is selected at any time.
type Shell struct {
	selected Destination
}

// NewShell creates a shell showing the default destination.
func NewShell() *Shell {
	return &Shell{selected: DefaultDestination}
}

// Selected returns the shown destination.
func (s *Shell) Selected() Destination {
	return s.selected
}

// Select shows d. An unknown destination keeps the current selection.
func (s *Shell) Select(d Destination) error {
	if _, ok := Lookup(d); !ok {
		return ErrUnknownDestination
	}
	s.selected = d
	return nil
}

// EntryState is a sidebar item as rendered.
type EntryState struct {
	Entry
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

// State is the rendered shell.
type State struct {
	Title        string       `json:"title"`
	Selected     EntryState   `json:"selected"`
	Destinations []EntryState `json:"destinations"`
}

// State snapshots the shell.
func (s *Shell) State() State {
	selected := s.Selected()

	st := State{Title: "Menu", Destinations: make([]EntryState, 0, len(Entries))}
	for _, e := range Entries {
		es := EntryState{Entry: e, URL: URL(e.ID), Selected: e.ID == selected}
		if es.Selected {
			st.Selected = es
		}
		st.Destinations = append(st.Destinations, es)
	}
	return st
}
