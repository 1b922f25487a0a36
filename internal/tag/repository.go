// File: internal/tag/repository.go
package tag

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for tag data operations.
type Repository interface {
	Create(ctx context.Context, t *Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindByText(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Tag, error)
	FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Tag, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM tag repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, t *Tag) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("Tag with this text already exists in the workspace.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	var t Tag
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Tag not found.")
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) FindByText(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error) {
	var t Tag
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND text = ?", workspaceID, text).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Tag not found.")
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Tag, error) {
	var tags []Tag
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("text ASC").
		Find(&tags).Error
	return tags, err
}

func (r *gormRepository) FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []Tag
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Find(&tags).Error
	return tags, err
}

func (r *gormRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Tag{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Tag not found or already deleted.")
	}
	return nil
}
