// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	UpdateOnboarding(ctx context.Context, id uuid.UUID, step int, completed bool) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Profile) error {
	if p.Email != nil {
		*p.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return common.ErrConflict.WithDetails("A profile already exists for this identity.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found with this ID.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found for this identity.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	normalized := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).Where("email = ?", normalized).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found with this email.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) Update(ctx context.Context, p *Profile) error {
	if p.Email != nil {
		*p.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	err := r.db.WithContext(ctx).Save(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("Update failed: email already taken.")
		}
		return err
	}
	return nil
}

// UpdateOnboarding writes both onboarding markers in one statement so they
// can never disagree with each other.
func (r *gormRepository) UpdateOnboarding(ctx context.Context, id uuid.UUID, step int, completed bool) error {
	result := r.db.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"onboarding_step":      step,
			"onboarding_completed": completed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Profile not found with this ID.")
	}
	return nil
}
