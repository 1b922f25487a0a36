// File: internal/client/repository.go
package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for client data operations.
type Repository interface {
	Create(ctx context.Context, cl *Client) error
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error)
	FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Client, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, search string, page, pageSize int) ([]Client, int64, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM client repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *gormRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error) {
	var cl Client
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&cl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Client not found.")
		}
		return nil, err
	}
	return &cl, nil
}

func (r *gormRepository) FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []Client
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Find(&clients).Error
	return clients, err
}

func (r *gormRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, search string, page, pageSize int) ([]Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&Client{}).Where("workspace_id = ?", workspaceID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR company ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []Client
	err := query.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *gormRepository) Update(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Save(cl).Error
}

func (r *gormRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Client{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Client not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Client{}).
		Where("workspace_id = ?", workspaceID).
		Count(&total).Error
	return total, err
}
