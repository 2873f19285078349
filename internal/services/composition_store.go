package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ErrCompositionNotFound is returned when no composition has the given ID
var ErrCompositionNotFound = errors.New("composition not found")

// CompositionStore persists rendered compositions
type CompositionStore interface {
	Save(ctx context.Context, c *models.Composition) error
	Get(ctx context.Context, publicID string) (*models.Composition, error)
	List(ctx context.Context, limit int) ([]models.Composition, error)
	Delete(ctx context.Context, publicID string) error
}

// GormCompositionStore stores compositions in Postgres
type GormCompositionStore struct {
	db *gorm.DB
}

// NewCompositionStore creates a gorm backed store
func NewCompositionStore(db *gorm.DB) *GormCompositionStore {
	return &GormCompositionStore{db: db}
}

// Save inserts a composition, assigning a public ID when it has none
func (s *GormCompositionStore) Save(ctx context.Context, c *models.Composition) error {
	if c.PublicID == "" {
		c.PublicID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to save composition: %w", err)
	}
	return nil
}

// Get fetches a composition by public ID
func (s *GormCompositionStore) Get(ctx context.Context, publicID string) (*models.Composition, error) {
	var c models.Composition
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load composition: %w", err)
	}
	return &c, nil
}

// List returns the most recent compositions first
func (s *GormCompositionStore) List(ctx context.Context, limit int) ([]models.Composition, error) {
	limit = ClampListLimit(limit)

	var out []models.Composition
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list compositions: %w", err)
	}
	return out, nil
}

// Delete soft-deletes a composition by public ID
func (s *GormCompositionStore) Delete(ctx context.Context, publicID string) error {
	result := s.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&models.Composition{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete composition: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCompositionNotFound
	}
	return nil
}

// ClampListLimit applies the default and maximum page sizes
func ClampListLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
