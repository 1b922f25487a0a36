// File: internal/dashboard/service.go
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/negotiation"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/workspace"
)

// Summary is the aggregate snapshot behind the root dashboard view.
type Summary struct {
	WorkspaceID         uuid.UUID                   `json:"workspace_id"`
	ClientCount         int64                       `json:"client_count"`
	ProposalCount       int64                       `json:"proposal_count"`
	ProposalsByStatus   map[proposal.Status]int64   `json:"proposals_by_status"`
	NegotiationsByStage map[negotiation.Stage]int64 `json:"negotiations_by_stage"`
	AcceptedValueCents  int64                       `json:"accepted_value_cents"`
	WonValueCents       int64                       `json:"won_value_cents"`
}

// WorkspaceResolver yields the caller's working workspace.
type WorkspaceResolver interface {
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
}

// ClientCounter exposes the client aggregate the dashboard needs.
type ClientCounter interface {
	CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error)
}

// ProposalAggregator exposes the proposal aggregates the dashboard needs.
type ProposalAggregator interface {
	CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, workspaceID uuid.UUID) (map[proposal.Status]int64, error)
	SumValueCents(ctx context.Context, workspaceID uuid.UUID, status proposal.Status) (int64, error)
}

// NegotiationAggregator exposes the negotiation aggregates the dashboard needs.
type NegotiationAggregator interface {
	CountByStage(ctx context.Context, workspaceID uuid.UUID) (map[negotiation.Stage]int64, error)
	SumValueCents(ctx context.Context, workspaceID uuid.UUID, stage negotiation.Stage) (int64, error)
}

// Service assembles the dashboard summary.
type Service struct {
	workspaces   WorkspaceResolver
	clients      ClientCounter
	proposals    ProposalAggregator
	negotiations NegotiationAggregator
	logger       *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(
	workspaces WorkspaceResolver,
	clients ClientCounter,
	proposals ProposalAggregator,
	negotiations NegotiationAggregator,
	logger *zap.Logger,
) *Service {
	return &Service{
		workspaces:   workspaces,
		clients:      clients,
		proposals:    proposals,
		negotiations: negotiations,
		logger:       logger.Named("dashboard_service"),
	}
}

// Summary computes the aggregate counters for the caller's workspace.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	clientCount, err := s.clients.CountByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	proposalCount, err := s.proposals.CountByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.proposals.CountByStatus(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	byStage, err := s.negotiations.CountByStage(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	acceptedValue, err := s.proposals.SumValueCents(ctx, ws.ID, proposal.StatusAccepted)
	if err != nil {
		return nil, err
	}
	wonValue, err := s.negotiations.SumValueCents(ctx, ws.ID, negotiation.StageWon)
	if err != nil {
		return nil, err
	}

	if byStatus == nil {
		byStatus = map[proposal.Status]int64{}
	}
	if byStage == nil {
		byStage = map[negotiation.Stage]int64{}
	}

	return &Summary{
		WorkspaceID:         ws.ID,
		ClientCount:         clientCount,
		ProposalCount:       proposalCount,
		ProposalsByStatus:   byStatus,
		NegotiationsByStage: byStage,
		AcceptedValueCents:  acceptedValue,
		WonValueCents:       wonValue,
	}, nil
}
