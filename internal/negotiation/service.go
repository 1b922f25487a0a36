// File: internal/negotiation/service.go
package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/workspace"
)

// WorkspaceResolver yields the caller's working workspace.
type WorkspaceResolver interface {
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
}

// ProposalFinder checks that a linked proposal exists in the workspace.
type ProposalFinder interface {
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*proposal.Proposal, error)
}

// Service provides negotiation business logic.
type Service struct {
	repo       Repository
	workspaces WorkspaceResolver
	proposals  ProposalFinder
	logger     *zap.Logger
}

// NewService creates a new negotiation service.
func NewService(repo Repository, workspaces WorkspaceResolver, proposals ProposalFinder, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		workspaces: workspaces,
		proposals:  proposals,
		logger:     logger.Named("negotiation_service"),
	}
}

// List returns a page of the workspace's negotiations, newest first,
// optionally filtered by stage.
func (s *Service) List(ctx context.Context, userID uuid.UUID, stage *Stage, page, pageSize int) ([]Negotiation, *common.Pagination, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	negotiations, total, err := s.repo.FindByWorkspace(ctx, ws.ID, stage, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return negotiations, common.NewPagination(total, page, pageSize), nil
}

// Get returns a single negotiation from the caller's workspace.
func (s *Service) Get(ctx context.Context, userID, negotiationID uuid.UUID) (*Negotiation, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, ws.ID, negotiationID)
}

// Create opens a negotiation. A linked proposal must exist in the same
// workspace; its value seeds the negotiation value when none is given.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateNegotiationRequest) (*Negotiation, error) {
	stage := StageOpen
	if req.Stage != nil {
		stage = Stage(*req.Stage)
		if !stage.IsValid() {
			return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown negotiation stage %q.", *req.Stage))
		}
	}

	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	valueCents := req.ValueCents
	if req.ProposalID != nil {
		p, err := s.proposals.FindByID(ctx, ws.ID, *req.ProposalID)
		if err != nil {
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
				return nil, common.ErrBadRequest.WithDetails("Linked proposal does not exist in this workspace.")
			}
			return nil, err
		}
		if valueCents == 0 {
			valueCents = p.ValueCents
		}
	}

	n := &Negotiation{
		WorkspaceID: ws.ID,
		ProposalID:  req.ProposalID,
		Stage:       stage,
		ValueCents:  valueCents,
		Notes:       req.Notes,
	}
	if stage.IsClosed() {
		now := time.Now()
		n.ClosedAt = &now
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("Negotiation created",
		zap.String("negotiationID", n.ID.String()),
		zap.String("workspaceID", ws.ID.String()),
		zap.String("stage", string(stage)))
	return n, nil
}

// Update applies the non-nil fields of the request. Moving into a terminal
// stage stamps closed_at; reopening clears it.
func (s *Service) Update(ctx context.Context, userID, negotiationID uuid.UUID, req UpdateNegotiationRequest) (*Negotiation, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.FindByID(ctx, ws.ID, negotiationID)
	if err != nil {
		return nil, err
	}

	if req.ProposalID != nil {
		if _, err := s.proposals.FindByID(ctx, ws.ID, *req.ProposalID); err != nil {
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
				return nil, common.ErrBadRequest.WithDetails("Linked proposal does not exist in this workspace.")
			}
			return nil, err
		}
		n.ProposalID = req.ProposalID
	}
	if req.ValueCents != nil {
		n.ValueCents = *req.ValueCents
	}
	if req.Notes != nil {
		n.Notes = req.Notes
	}
	if req.Stage != nil {
		stage := Stage(*req.Stage)
		if !stage.IsValid() {
			return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown negotiation stage %q.", *req.Stage))
		}
		if stage.IsClosed() && !n.Stage.IsClosed() {
			now := time.Now()
			n.ClosedAt = &now
		}
		if !stage.IsClosed() {
			n.ClosedAt = nil
		}
		n.Stage = stage
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a negotiation from the caller's workspace.
func (s *Service) Delete(ctx context.Context, userID, negotiationID uuid.UUID) error {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ws.ID, negotiationID)
}
