package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamID indicates that the provided team id is empty or malformed.
	ErrInvalidTeamID = errors.New("invalid team id")
	// ErrNameRequired indicates that a new team was submitted without a name.
	ErrNameRequired = errors.New("team name is required")
	// ErrInvalidColor indicates that a submitted color is neither a hex value nor a palette index.
	ErrInvalidColor = errors.New("invalid team color")
)
