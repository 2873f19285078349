package models

import (
	"time"

	"gorm.io/gorm"
)

// Composition is a named, rendered DSL script
type Composition struct {
	ID            uint             `gorm:"primarykey" json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	PublicID      string           `gorm:"uniqueIndex;size:36;not null" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	DSL           string           `gorm:"type:text;not null" json:"dsl"`
	Voices        []RenderedVoice  `gorm:"serializer:json" json:"voices"`
	Actions       []map[string]any `gorm:"serializer:json" json:"actions,omitempty"`
	EventCount    int              `gorm:"not null;default:0" json:"event_count"`
	DurationBeats float64          `gorm:"not null;default:0" json:"duration_beats"`
	CreatedBy     string           `gorm:"index" json:"created_by,omitempty"`
}

// CompositionSummary is the list view of a composition
type CompositionSummary struct {
	PublicID      string    `json:"id"`
	Name          string    `json:"name"`
	EventCount    int       `json:"event_count"`
	DurationBeats float64   `json:"duration_beats"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary strips the voices from a composition
func (c *Composition) Summary() CompositionSummary {
	return CompositionSummary{
		PublicID:      c.PublicID,
		Name:          c.Name,
		EventCount:    c.EventCount,
		DurationBeats: c.DurationBeats,
		CreatedAt:     c.CreatedAt,
	}
}
