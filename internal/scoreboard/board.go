// Package scoreboard renders the ordered team list and keeps viewers in sync with store changes.
package scoreboard

import (
	"context"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// Empty-state copy shown when no team exists.
const (
	EmptyTitle   = "No Teams"
	EmptyMessage = "Create a team with the \"Add Team\" button."
)

// Lister reads the ordered team list.
type Lister interface {
	ListTeams(ctx context.Context) ([]teamModel.Team, error)
}

// Row is one rendered scoreboard line.
type Row struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ColorHex     string `json:"color_hex"`
	DisplayColor string `json:"display_color"`
	Score        int    `json:"score"`
}

// Snapshot is the full board as displayed at one moment.
type Snapshot struct {
	Teams        []Row  `json:"teams"`
	Empty        bool   `json:"empty"`
	EmptyTitle   string `json:"empty_title,omitempty"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

// Board builds snapshots from the store.
type Board struct {
	teams Lister
}

// NewBoard creates a board over the given team source.
func NewBoard(teams Lister) *Board {
	return &Board{teams: teams}
}

// Snapshot re-reads the ordered team list and computes the displayed rows.
func (b *Board) Snapshot(ctx context.Context) (Snapshot, error) {
	teams, err := b.teams.ListTeams(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Teams: make([]Row, 0, len(teams))}
	for i := range teams {
		t := &teams[i]
		snap.Teams = append(snap.Teams, Row{
			ID:           t.ID,
			Name:         t.Name,
			ColorHex:     t.ColorHex,
			DisplayColor: t.Color().Hex(),
			Score:        t.Score,
		})
	}

	if len(snap.Teams) == 0 {
		snap.Empty = true
		snap.EmptyTitle = EmptyTitle
		snap.EmptyMessage = EmptyMessage
	}
	return snap, nil
}
