// File: internal/negotiation/repository.go
package negotiation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for negotiation data operations.
type Repository interface {
	Create(ctx context.Context, n *Negotiation) error
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Negotiation, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, stage *Stage, page, pageSize int) ([]Negotiation, int64, error)
	Update(ctx context.Context, n *Negotiation) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	CountByStage(ctx context.Context, workspaceID uuid.UUID) (map[Stage]int64, error)
	SumValueCents(ctx context.Context, workspaceID uuid.UUID, stage Stage) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM negotiation repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, n *Negotiation) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Negotiation, error) {
	var n Negotiation
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Negotiation not found.")
		}
		return nil, err
	}
	return &n, nil
}

func (r *gormRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, stage *Stage, page, pageSize int) ([]Negotiation, int64, error) {
	query := r.db.WithContext(ctx).Model(&Negotiation{}).Where("workspace_id = ?", workspaceID)
	if stage != nil {
		query = query.Where("stage = ?", *stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var negotiations []Negotiation
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&negotiations).Error
	if err != nil {
		return nil, 0, err
	}
	return negotiations, total, nil
}

func (r *gormRepository) Update(ctx context.Context, n *Negotiation) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *gormRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Negotiation{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Negotiation not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) CountByStage(ctx context.Context, workspaceID uuid.UUID) (map[Stage]int64, error) {
	var rows []struct {
		Stage Stage
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Negotiation{}).
		Select("stage, count(*) as count").
		Where("workspace_id = ?", workspaceID).
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Stage]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}

func (r *gormRepository) SumValueCents(ctx context.Context, workspaceID uuid.UUID, stage Stage) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Negotiation{}).
		Select("COALESCE(SUM(value_cents), 0)").
		Where("workspace_id = ? AND stage = ?", workspaceID, stage).
		Scan(&total).Error
	return total, err
}
