// File: internal/announcement/model.go
package announcement

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a product news entry shown on the Novidades page. Entries
// are global; read state is tracked per profile.
type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `gorm:"type:text;not null"`
	Body        string    `gorm:"type:text;not null"`
	PublishedAt time.Time `gorm:"type:timestamptz;not null;default:current_timestamp"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:current_timestamp"`
}

// TableName specifies the table name for the Announcement model.
func (Announcement) TableName() string {
	return "announcements"
}

// Read records that a profile has seen an announcement.
type Read struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;primary_key"`
	ProfileID      uuid.UUID `gorm:"type:uuid;primary_key"`
	ReadAt         time.Time `gorm:"type:timestamptz;not null;default:current_timestamp"`
}

// TableName specifies the table name for the Read model.
func (Read) TableName() string {
	return "announcement_reads"
}

// --- DTOs ---

type AnnouncementResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	IsRead      bool      `json:"is_read"`
}

// ToAnnouncementResponse converts an Announcement and its read state to a DTO.
func ToAnnouncementResponse(a *Announcement, isRead bool) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		PublishedAt: a.PublishedAt,
		IsRead:      isRead,
	}
}
