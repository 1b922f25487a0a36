// File: internal/announcement/repository.go
package announcement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salehunt_backend/internal/common"
)

// Repository defines the interface for announcement data operations.
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	FindPage(ctx context.Context, page, pageSize int) ([]Announcement, int64, error)
	FindReadIDs(ctx context.Context, profileID uuid.UUID, announcementIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	MarkRead(ctx context.Context, announcementID, profileID uuid.UUID) error
	MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM announcement repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *gormRepository) FindPage(ctx context.Context, page, pageSize int) ([]Announcement, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []Announcement
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

func (r *gormRepository) FindReadIDs(ctx context.Context, profileID uuid.UUID, announcementIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(announcementIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	var reads []Read
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND announcement_id IN ?", profileID, announcementIDs).
		Find(&reads).Error
	if err != nil {
		return nil, err
	}

	readSet := make(map[uuid.UUID]bool, len(reads))
	for _, read := range reads {
		readSet[read.AnnouncementID] = true
	}
	return readSet, nil
}

func (r *gormRepository) MarkRead(ctx context.Context, announcementID, profileID uuid.UUID) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&Announcement{}).
		Where("id = ?", announcementID).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return common.ErrNotFound.WithDetails("Announcement not found.")
	}

	// Marking twice is a no-op; the first read_at wins.
	read := Read{AnnouncementID: announcementID, ProfileID: profileID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&read).Error
}

func (r *gormRepository) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var unread []Announcement
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", r.db.Model(&Read{}).
			Select("announcement_id").
			Where("profile_id = ?", profileID)).
		Find(&unread).Error
	if err != nil {
		return 0, err
	}
	if len(unread) == 0 {
		return 0, nil
	}

	reads := make([]Read, len(unread))
	for i, a := range unread {
		reads[i] = Read{AnnouncementID: a.ID, ProfileID: profileID}
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&reads).Error
	if err != nil {
		return 0, err
	}
	return int64(len(reads)), nil
}

func (r *gormRepository) CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Announcement{}).
		Where("id NOT IN (?)", r.db.Model(&Read{}).
			Select("announcement_id").
			Where("profile_id = ?", profileID)).
		Count(&total).Error
	return total, err
}
