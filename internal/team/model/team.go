package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purpleworks/workshop/internal/color"
)

// Team represents one scoreboard entry.
// Matches the teams table schema and the teams document collection.
type Team struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id" bson:"_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name" bson:"name"`
	ColorHex  string    `gorm:"column:color_hex;type:varchar(16);not null" json:"color_hex" bson:"color_hex"`
	Score     int       `gorm:"column:score;not null" json:"score" bson:"score"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at" bson:"created_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns an identifier to teams created without one.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Color decodes the stored hex, falling back to the neutral default.
func (t Team) Color() color.Color {
	return color.FromHexOrDefault(t.ColorHex)
}
