// File: internal/tag/model.go
package tag

import (
	"time"

	"github.com/google/uuid"

	"salehunt_backend/internal/common"
)

// DefaultColor is applied when a tag is created without an explicit color.
const DefaultColor = "#12BF7D"

// Tag labels proposals within a workspace. Text is unique per workspace.
type Tag struct {
	common.BaseModel
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tags_workspace_text,composite:workspace_text"`
	Text        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_tags_workspace_text,composite:workspace_text"`
	Color       string    `gorm:"type:varchar(9);not null;default:'#12BF7D'"`
}

// TableName specifies the table name for the Tag model.
func (Tag) TableName() string {
	return "tags"
}

// --- DTOs ---

type CreateTagRequest struct {
	Text  string `json:"text" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse converts a Tag model to a TagResponse DTO.
func ToTagResponse(t *Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Text:      t.Text,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}
