// File: internal/workspace/repository.go
package workspace

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for workspace data operations.
type Repository interface {
	Create(ctx context.Context, w *Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Workspace, error)
	FindDefaultByOwner(ctx context.Context, ownerID uuid.UUID) (*Workspace, error)
	Update(ctx context.Context, w *Workspace) error
	SaveColor(ctx context.Context, c *Color) error
	FindColors(ctx context.Context, createdBy uuid.UUID) ([]Color, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM workspace repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, w *Workspace) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	var w Workspace
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Workspace not found with this ID.")
		}
		return nil, err
	}
	return &w, nil
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Workspace, error) {
	var workspaces []Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// FindDefaultByOwner returns the owner's earliest created workspace, which
// is the one the dashboard operates on.
func (r *gormRepository) FindDefaultByOwner(ctx context.Context, ownerID uuid.UUID) (*Workspace, error) {
	var w Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No workspace found for this user.")
		}
		return nil, err
	}
	return &w, nil
}

func (r *gormRepository) Update(ctx context.Context, w *Workspace) error {
	err := r.db.WithContext(ctx).Save(w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("Workspace update conflicts with an existing record.")
		}
		return err
	}
	return nil
}

// SaveColor inserts a custom color. Saving a hex that already exists is not
// an error; the existing row wins.
func (r *gormRepository) SaveColor(ctx context.Context, c *Color) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindColors(ctx context.Context, createdBy uuid.UUID) ([]Color, error) {
	var colors []Color
	err := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Order("created_at ASC").
		Find(&colors).Error
	if err != nil {
		return nil, err
	}
	return colors, nil
}
