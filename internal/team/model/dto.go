// Package model provides domain models and DTOs for team module.
package model

import "time"

// SubmitTeamRequest is the editor submission for both add and edit.
// Color is a hex value from the free-form picker; Swatch selects a palette preset
// and wins when both are present.
type SubmitTeamRequest struct {
	Name   string  `json:"name"`
	Color  *string `json:"color,omitempty"`
	Swatch *int    `json:"swatch,omitempty"`
}

// DeleteTeamsRequest removes several teams in one list gesture.
type DeleteTeamsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ColorHex     string    `json:"color_hex"`
	DisplayColor string    `json:"display_color"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTeamResponse builds the API view of a team.
func NewTeamResponse(t *Team) TeamResponse {
	return TeamResponse{
		ID:           t.ID,
		Name:         t.Name,
		ColorHex:     t.ColorHex,
		DisplayColor: t.Color().Hex(),
		Score:        t.Score,
		CreatedAt:    t.CreatedAt,
	}
}

// TeamsResponse wraps an ordered team list.
type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// NewTeamsResponse builds the API view of an ordered team list.
func NewTeamsResponse(teams []Team) TeamsResponse {
	resp := TeamsResponse{Teams: make([]TeamResponse, 0, len(teams))}
	for i := range teams {
		resp.Teams = append(resp.Teams, NewTeamResponse(&teams[i]))
	}
	return resp
}

// DeleteTeamsResponse reports how many teams a bulk delete removed.
type DeleteTeamsResponse struct {
	Deleted int64 `json:"deleted"`
}
