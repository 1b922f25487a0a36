// File: internal/negotiation/model.go
package negotiation

import (
	"time"

	"github.com/google/uuid"

	"salehunt_backend/internal/common"
)

// Stage enumerates the negotiation pipeline.
type Stage string

const (
	StageOpen        Stage = "open"
	StageNegotiating Stage = "negotiating"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

// IsValid reports whether the stage is one of the known pipeline values.
func (s Stage) IsValid() bool {
	switch s {
	case StageOpen, StageNegotiating, StageWon, StageLost:
		return true
	}
	return false
}

// IsClosed reports whether the stage is terminal.
func (s Stage) IsClosed() bool {
	return s == StageWon || s == StageLost
}

// Negotiation tracks a deal in a workspace pipeline, optionally linked to the
// proposal being negotiated.
type Negotiation struct {
	common.BaseModel
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index:idx_negociacoes_workspace"`
	ProposalID  *uuid.UUID `gorm:"column:proposta_id;type:uuid"`
	Stage       Stage      `gorm:"type:varchar(50);not null;default:'open'"`
	ValueCents  int64      `gorm:"not null;default:0"`
	Notes       *string    `gorm:"type:text"`
	ClosedAt    *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the table name for the Negotiation model.
func (Negotiation) TableName() string {
	return "negociacoes"
}

// --- DTOs ---

type CreateNegotiationRequest struct {
	ProposalID *uuid.UUID `json:"proposal_id,omitempty"`
	Stage      *string    `json:"stage,omitempty"`
	ValueCents int64      `json:"value_cents" binding:"omitempty,min=0"`
	Notes      *string    `json:"notes,omitempty"`
}

type UpdateNegotiationRequest struct {
	ProposalID *uuid.UUID `json:"proposal_id,omitempty"`
	Stage      *string    `json:"stage,omitempty"`
	ValueCents *int64     `json:"value_cents,omitempty" binding:"omitempty,min=0"`
	Notes      *string    `json:"notes,omitempty"`
}

type NegotiationResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProposalID *uuid.UUID `json:"proposal_id,omitempty"`
	Stage      Stage      `json:"stage"`
	ValueCents int64      `json:"value_cents"`
	Notes      *string    `json:"notes,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToNegotiationResponse converts a Negotiation model to its DTO.
func ToNegotiationResponse(n *Negotiation) NegotiationResponse {
	return NegotiationResponse{
		ID:         n.ID,
		ProposalID: n.ProposalID,
		Stage:      n.Stage,
		ValueCents: n.ValueCents,
		Notes:      n.Notes,
		ClosedAt:   n.ClosedAt,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
