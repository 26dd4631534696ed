// Package service provides business logic layer for team module.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/color"
	teamModel "github.com/purpleworks/workshop/internal/team/model"
	"github.com/purpleworks/workshop/internal/team/repository"
	"github.com/purpleworks/workshop/pkg/timeprovider"
)

// importSpacing separates the creation times of imported teams so they keep group order
// in stores with millisecond timestamp precision.
const importSpacing = time.Millisecond

// Notifier receives every successful store mutation.
type Notifier interface {
	Notify(ctx context.Context, change teamModel.Change)
}

// Service defines the interface for team business logic operations.
type Service interface {
	// ListTeams returns all teams ordered by creation time.
	ListTeams(ctx context.Context) ([]teamModel.Team, error)

	// GetTeam returns a single team.
	GetTeam(ctx context.Context, id string) (*teamModel.Team, error)

	// AddTeam creates a team; an empty name becomes "Team N".
	AddTeam(ctx context.Context, name string, c color.Color) (*teamModel.Team, error)

	// EditTeam renames and recolors a team; an empty name keeps the current one.
	EditTeam(ctx context.Context, id, name string, c color.Color) (*teamModel.Team, error)

	// Increment adds one point.
	Increment(ctx context.Context, id string) (*teamModel.Team, error)

	// Decrement removes one point, flooring at zero.
	Decrement(ctx context.Context, id string) (*teamModel.Team, error)

	// ResetScore sets a single score to zero.
	ResetScore(ctx context.Context, id string) (*teamModel.Team, error)

	// ResetAll sets every score to zero.
	ResetAll(ctx context.Context) error

	// DeleteTeam removes a team.
	DeleteTeam(ctx context.Context, id string) error

	// DeleteTeams removes several teams at once.
	DeleteTeams(ctx context.Context, ids []string) (int64, error)

	// ImportTeams replaces the whole store with one team per group.
	ImportTeams(ctx context.Context, groups [][]string) ([]teamModel.Team, error)
}

type service struct {
	repo     repository.Repository
	notifier Notifier
	clock    timeprovider.TimeProvider
	logger   *zap.SugaredLogger
}

// New creates a new team service instance. A nil notifier disables change publishing.
func New(
	repo repository.Repository,
	notifier Notifier,
	clock timeprovider.TimeProvider,
	logger *zap.SugaredLogger,
) Service {
	if clock == nil {
		clock = timeprovider.New()
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

func (s *service) notify(ctx context.Context, kind teamModel.ChangeKind, teamID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, teamModel.Change{Kind: kind, TeamID: teamID})
}

// ListTeams returns all teams ordered by creation time.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.Team, error) {
	return s.repo.List(ctx)
}

// GetTeam returns a single team.
func (s *service) GetTeam(ctx context.Context, id string) (*teamModel.Team, error) {
	if id == "" {
		return nil, teamModel.ErrInvalidTeamID
	}
	return s.repo.GetByID(ctx, id)
}

// AddTeam creates a team; an empty name becomes "Team N" where N is the current count plus one.
func (s *service) AddTeam(ctx context.Context, name string, c color.Color) (*teamModel.Team, error) {
	if name == "" {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count teams: %w", err)
		}
		name = DefaultTeamName(int(count) + 1)
	}

	hex, ok := c.ToHex(false)
	if !ok {
		hex = color.FallbackHex
	}

	team := &teamModel.Team{
		Name:      name,
		ColorHex:  hex,
		Score:     0,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team added", "team_id", team.ID, "name", team.Name, "color", team.ColorHex)
	s.notify(ctx, teamModel.ChangeCreated, team.ID)
	return team, nil
}

// EditTeam renames and recolors a team. An empty name keeps the current name and a color that
// cannot be encoded keeps the current color.
func (s *service) EditTeam(ctx context.Context, id, name string, c color.Color) (*teamModel.Team, error) {
	current, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = current.Name
	}
	hex, ok := c.ToHex(false)
	if !ok {
		hex = current.ColorHex
	}

	team, err := s.repo.Update(ctx, id, name, hex)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, teamModel.ChangeUpdated, id)
	return team, nil
}

// Increment adds one point.
func (s *service) Increment(ctx context.Context, id string) (*teamModel.Team, error) {
	return s.score(ctx, id, s.repo.Increment)
}

// Decrement removes one point, flooring at zero.
func (s *service) Decrement(ctx context.Context, id string) (*teamModel.Team, error) {
	return s.score(ctx, id, s.repo.Decrement)
}

// ResetScore sets a single score to zero.
func (s *service) ResetScore(ctx context.Context, id string) (*teamModel.Team, error) {
	return s.score(ctx, id, s.repo.ResetScore)
}

func (s *service) score(
	ctx context.Context,
	id string,
	apply func(context.Context, string) (*teamModel.Team, error),
) (*teamModel.Team, error) {
	if id == "" {
		return nil, teamModel.ErrInvalidTeamID
	}

	team, err := apply(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, teamModel.ChangeScored, id)
	return team, nil
}

// ResetAll sets every score to zero.
func (s *service) ResetAll(ctx context.Context) error {
	affected, err := s.repo.ResetAll(ctx)
	if err != nil {
		return err
	}

	s.logger.Infow("all scores reset", "teams", affected)
	s.notify(ctx, teamModel.ChangeReset, "")
	return nil
}

// DeleteTeam removes a team.
func (s *service) DeleteTeam(ctx context.Context, id string) error {
	if id == "" {
		return teamModel.ErrInvalidTeamID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, teamModel.ChangeDeleted, id)
	return nil
}

// DeleteTeams removes several teams at once.
func (s *service) DeleteTeams(ctx context.Context, ids []string) (int64, error) {
	for _, id := range ids {
		if id == "" {
			return 0, teamModel.ErrInvalidTeamID
		}
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.notify(ctx, teamModel.ChangeDeleted, "")
	}
	return deleted, nil
}

// ImportTeams replaces the whole store with one team per group, in group order.
// Teams are named "Team 1".."Team N" and colored by cycling through the palette.
func (s *service) ImportTeams(ctx context.Context, groups [][]string) ([]teamModel.Team, error) {
	base := s.clock.Now()

	teams := make([]teamModel.Team, 0, len(groups))
	for i := range groups {
		hex, ok := color.PaletteAt(i).ToHex(false)
		if !ok {
			hex = color.FallbackHex
		}
		teams = append(teams, teamModel.Team{
			Name:      DefaultTeamName(i + 1),
			ColorHex:  hex,
			Score:     0,
			CreatedAt: base.Add(time.Duration(i) * importSpacing),
		})
	}

	if err := s.repo.ReplaceAll(ctx, teams); err != nil {
		return nil, fmt.Errorf("replace teams: %w", err)
	}

	s.logger.Infow("teams imported", "groups", len(groups))
	s.notify(ctx, teamModel.ChangeReplaced, "")
	return teams, nil
}

// DefaultTeamName returns the generated name for the n-th team.
func DefaultTeamName(n int) string {
	return fmt.Sprintf("Team %d", n)
}
