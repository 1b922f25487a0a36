// File: internal/proposal/repository.go
package proposal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/client"
	"salehunt_backend/internal/common"
	"salehunt_backend/internal/tag"
)

// ListQuery filters the workspace proposal listing.
type ListQuery struct {
	Status   *Status
	TagID    *uuid.UUID
	ClientID *uuid.UUID
	Page     int
	PageSize int
}

// Repository defines the interface for proposal data operations.
type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Proposal, error)
	FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Proposal, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, query ListQuery) ([]Proposal, int64, error)
	Update(ctx context.Context, p *Proposal) error
	ReplaceClients(ctx context.Context, p *Proposal, clients []client.Client) error
	ReplaceTags(ctx context.Context, p *Proposal, tags []tag.Tag) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	FindBatch(ctx context.Context, offset, limit int) ([]Proposal, error)
	CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, workspaceID uuid.UUID) (map[Status]int64, error)
	SumValueCents(ctx context.Context, workspaceID uuid.UUID, status Status) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM proposal repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Proposal) error {
	// Associations are replaced explicitly by the service; FullSaveAssociations
	// here would re-create client and tag rows.
	return r.db.WithContext(ctx).Omit("Clients", "Tags").Create(p).Error
}

func (r *gormRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Proposal, error) {
	var p Proposal
	err := r.db.WithContext(ctx).
		Preload("Clients").
		Preload("Tags").
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Proposal not found.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Proposal, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var proposals []Proposal
	err := r.db.WithContext(ctx).
		Preload("Clients").
		Preload("Tags").
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Find(&proposals).Error
	return proposals, err
}

func (r *gormRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, query ListQuery) ([]Proposal, int64, error) {
	dbQuery := r.db.WithContext(ctx).Model(&Proposal{}).
		Where("propostas.workspace_id = ?", workspaceID)

	if query.Status != nil {
		dbQuery = dbQuery.Where("propostas.status = ?", *query.Status)
	}
	if query.TagID != nil {
		dbQuery = dbQuery.
			Joins("JOIN proposta_tags ON proposta_tags.proposta_id = propostas.id").
			Where("proposta_tags.tag_id = ?", *query.TagID)
	}
	if query.ClientID != nil {
		dbQuery = dbQuery.
			Joins("JOIN proposta_clientes ON proposta_clientes.proposta_id = propostas.id").
			Where("proposta_clientes.cliente_id = ?", *query.ClientID)
	}

	var total int64
	if err := dbQuery.Distinct("propostas.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proposals []Proposal
	err := dbQuery.
		Distinct("propostas.*").
		Preload("Clients").
		Preload("Tags").
		Order("propostas.created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (r *gormRepository) Update(ctx context.Context, p *Proposal) error {
	return r.db.WithContext(ctx).Omit("Clients", "Tags").Save(p).Error
}

func (r *gormRepository) ReplaceClients(ctx context.Context, p *Proposal, clients []client.Client) error {
	return r.db.WithContext(ctx).Model(p).Association("Clients").Replace(clients)
}

func (r *gormRepository) ReplaceTags(ctx context.Context, p *Proposal, tags []tag.Tag) error {
	return r.db.WithContext(ctx).Model(p).Association("Tags").Replace(tags)
}

func (r *gormRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Proposal{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Proposal not found or already deleted.")
	}
	return nil
}

// FindBatch pages through all proposals regardless of workspace. The reindex
// job uses it.
func (r *gormRepository) FindBatch(ctx context.Context, offset, limit int) ([]Proposal, error) {
	var proposals []Proposal
	err := r.db.WithContext(ctx).
		Preload("Clients").
		Preload("Tags").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&proposals).Error
	return proposals, err
}

func (r *gormRepository) CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Proposal{}).
		Where("workspace_id = ?", workspaceID).
		Count(&total).Error
	return total, err
}

func (r *gormRepository) CountByStatus(ctx context.Context, workspaceID uuid.UUID) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Proposal{}).
		Select("status, count(*) as count").
		Where("workspace_id = ?", workspaceID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *gormRepository) SumValueCents(ctx context.Context, workspaceID uuid.UUID, status Status) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Proposal{}).
		Select("COALESCE(SUM(value_cents), 0)").
		Where("workspace_id = ? AND status = ?", workspaceID, status).
		Scan(&total).Error
	return total, err
}
