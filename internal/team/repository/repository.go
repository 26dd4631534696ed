// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds team by id.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// List returns all teams ordered by creation time, oldest first.
	List(ctx context.Context) ([]teamModel.Team, error)

	// Count returns the number of stored teams.
	Count(ctx context.Context) (int64, error)

	// Increment adds one point to the team score.
	Increment(ctx context.Context, id string) (*teamModel.Team, error)

	// Decrement removes one point from the team score, never going below zero.
	Decrement(ctx context.Context, id string) (*teamModel.Team, error)

	// ResetScore sets the team score to zero.
	ResetScore(ctx context.Context, id string) (*teamModel.Team, error)

	// ResetAll sets every team score to zero.
	ResetAll(ctx context.Context) (int64, error)

	// Update replaces name and color of a team.
	Update(ctx context.Context, id, name, colorHex string) (*teamModel.Team, error)

	// Delete removes a team.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes the listed teams and reports how many existed.
	DeleteMany(ctx context.Context, ids []string) (int64, error)

	// ReplaceAll atomically removes every team and inserts the given ones.
	ReplaceAll(ctx context.Context, teams []teamModel.Team) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance backed by a SQL database.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetByID finds team by id.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// List returns all teams ordered by creation time, oldest first.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team

	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&teams).Error

	if err != nil {
		return nil, err
	}

	if teams == nil {
		return []teamModel.Team{}, nil
	}

	return teams, nil
}

// Count returns the number of stored teams.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&teamModel.Team{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Increment adds one point to the team score.
func (r *repository) Increment(ctx context.Context, id string) (*teamModel.Team, error) {
	return r.updateScore(ctx, id, gorm.Expr("score + 1"))
}

// Decrement removes one point from the team score, never going below zero.
func (r *repository) Decrement(ctx context.Context, id string) (*teamModel.Team, error) {
	return r.updateScore(ctx, id, gorm.Expr("CASE WHEN score > 0 THEN score - 1 ELSE 0 END"))
}

// ResetScore sets the team score to zero.
func (r *repository) ResetScore(ctx context.Context, id string) (*teamModel.Team, error) {
	return r.updateScore(ctx, id, 0)
}

func (r *repository) updateScore(ctx context.Context, id string, value interface{}) (*teamModel.Team, error) {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", id).
		UpdateColumn("score", value)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, teamModel.ErrTeamNotFound
	}

	return r.GetByID(ctx, id)
}

// ResetAll sets every team score to zero.
func (r *repository) ResetAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("1 = 1").
		UpdateColumn("score", 0)

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update replaces name and color of a team.
func (r *repository) Update(ctx context.Context, id, name, colorHex string) (*teamModel.Team, error) {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"name":      name,
			"color_hex": colorHex,
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, teamModel.ErrTeamNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a team.
func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&teamModel.Team{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// DeleteMany removes the listed teams and reports how many existed.
func (r *repository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&teamModel.Team{})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReplaceAll atomically removes every team and inserts the given ones.
func (r *repository) ReplaceAll(ctx context.Context, teams []teamModel.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("1 = 1").Delete(&teamModel.Team{})
		if deleted.Error != nil {
			return fmt.Errorf("delete teams: %w", deleted.Error)
		}

		if len(teams) == 0 {
			return nil
		}

		if err := tx.Create(&teams).Error; err != nil {
			return fmt.Errorf("insert teams: %w", err)
		}

		if r.logger != nil {
			r.logger.Debugw("teams replaced", "deleted", deleted.RowsAffected, "inserted", len(teams))
		}
		return nil
	})
}
