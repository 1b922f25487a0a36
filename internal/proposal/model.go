// File: internal/proposal/model.go
package proposal

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"salehunt_backend/internal/client"
	"salehunt_backend/internal/common"
	"salehunt_backend/internal/tag"
)

// Status enumerates the proposal lifecycle.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid reports whether the status is one of the known lifecycle values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Proposal is a sales proposal scoped to a workspace. Clients and tags hang
// off join tables that cascade on delete.
type Proposal struct {
	common.BaseModel
	WorkspaceID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_propostas_workspace"`
	Title        string          `gorm:"type:text;not null"`
	Description  *string         `gorm:"type:text"`
	Status       Status          `gorm:"type:varchar(50);not null;default:'draft'"`
	ValueCents   int64           `gorm:"not null;default:0"`
	Deliverables pq.StringArray  `gorm:"type:text[]"`
	ValidUntil   *time.Time      `gorm:"type:timestamptz"`
	Clients      []client.Client `gorm:"many2many:proposta_clientes;joinForeignKey:proposta_id;joinReferences:cliente_id"`
	Tags         []tag.Tag       `gorm:"many2many:proposta_tags;joinForeignKey:proposta_id;joinReferences:tag_id"`
}

// TableName specifies the table name for the Proposal model.
func (Proposal) TableName() string {
	return "propostas"
}

// --- DTOs ---

type CreateProposalRequest struct {
	Title        string      `json:"title" binding:"required,max=255"`
	Description  *string     `json:"description,omitempty"`
	Status       *string     `json:"status,omitempty"`
	ValueCents   int64       `json:"value_cents" binding:"omitempty,min=0"`
	Deliverables []string    `json:"deliverables,omitempty" binding:"omitempty,max=50,dive,max=255"`
	ValidUntil   *time.Time  `json:"valid_until,omitempty"`
	ClientIDs    []uuid.UUID `json:"client_ids,omitempty"`
	TagIDs       []uuid.UUID `json:"tag_ids,omitempty"`
}

type UpdateProposalRequest struct {
	Title        *string      `json:"title,omitempty" binding:"omitempty,max=255"`
	Description  *string      `json:"description,omitempty"`
	Status       *string      `json:"status,omitempty"`
	ValueCents   *int64       `json:"value_cents,omitempty" binding:"omitempty,min=0"`
	Deliverables *[]string    `json:"deliverables,omitempty" binding:"omitempty,max=50,dive,max=255"`
	ValidUntil   *time.Time   `json:"valid_until,omitempty"`
	ClientIDs    *[]uuid.UUID `json:"client_ids,omitempty"`
	TagIDs       *[]uuid.UUID `json:"tag_ids,omitempty"`
}

type ProposalResponse struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	Description  *string                 `json:"description,omitempty"`
	Status       Status                  `json:"status"`
	ValueCents   int64                   `json:"value_cents"`
	Deliverables []string                `json:"deliverables"`
	ValidUntil   *time.Time              `json:"valid_until,omitempty"`
	Clients      []client.ClientResponse `json:"clients"`
	Tags         []tag.TagResponse       `json:"tags"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ToProposalResponse converts a Proposal model to a ProposalResponse DTO.
func ToProposalResponse(p *Proposal) ProposalResponse {
	clients := make([]client.ClientResponse, len(p.Clients))
	for i := range p.Clients {
		clients[i] = client.ToClientResponse(&p.Clients[i])
	}
	tags := make([]tag.TagResponse, len(p.Tags))
	for i := range p.Tags {
		tags[i] = tag.ToTagResponse(&p.Tags[i])
	}
	deliverables := []string(p.Deliverables)
	if deliverables == nil {
		deliverables = []string{}
	}
	return ProposalResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		ValueCents:   p.ValueCents,
		Deliverables: deliverables,
		ValidUntil:   p.ValidUntil,
		Clients:      clients,
		Tags:         tags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
