// File: internal/proposal/service.go
package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/client"
	"salehunt_backend/internal/common"
	"salehunt_backend/internal/tag"
	"salehunt_backend/internal/workspace"
)

// indexTimeout bounds the detached search-index write after a mutation.
const indexTimeout = 10 * time.Second

// WorkspaceResolver yields the caller's working workspace.
type WorkspaceResolver interface {
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
}

// ClientFinder resolves workspace clients by id for association.
type ClientFinder interface {
	FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]client.Client, error)
}

// TagFinder resolves workspace tags by id for association.
type TagFinder interface {
	FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]tag.Tag, error)
}

// Service provides proposal business logic. Search index writes are
// best-effort; the database row is the source of truth and the cron reindex
// repairs any drift.
type Service struct {
	repo       Repository
	workspaces WorkspaceResolver
	clients    ClientFinder
	tags       TagFinder
	index      SearchIndex
	logger     *zap.Logger
}

// NewService creates a new proposal service.
func NewService(
	repo Repository,
	workspaces WorkspaceResolver,
	clients ClientFinder,
	tags TagFinder,
	index SearchIndex,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		workspaces: workspaces,
		clients:    clients,
		tags:       tags,
		index:      index,
		logger:     logger.Named("proposal_service"),
	}
}

// List returns a page of the workspace's proposals, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Proposal, *common.Pagination, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	proposals, total, err := s.repo.FindByWorkspace(ctx, ws.ID, query)
	if err != nil {
		return nil, nil, err
	}
	return proposals, common.NewPagination(total, query.Page, query.PageSize), nil
}

// Get returns a single proposal with its clients and tags.
func (s *Service) Get(ctx context.Context, userID, proposalID uuid.UUID) (*Proposal, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, ws.ID, proposalID)
}

// Create adds a proposal to the caller's workspace. Client and tag ids must
// belong to the same workspace.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateProposalRequest) (*Proposal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, common.ErrBadRequest.WithDetails("Proposal title cannot be blank.")
	}

	status := StatusDraft
	if req.Status != nil {
		status = Status(*req.Status)
		if !status.IsValid() {
			return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown proposal status %q.", *req.Status))
		}
	}

	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	linkedClients, err := s.resolveClients(ctx, ws.ID, req.ClientIDs)
	if err != nil {
		return nil, err
	}
	linkedTags, err := s.resolveTags(ctx, ws.ID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	p := &Proposal{
		WorkspaceID:  ws.ID,
		Title:        title,
		Description:  req.Description,
		Status:       status,
		ValueCents:   req.ValueCents,
		Deliverables: req.Deliverables,
		ValidUntil:   req.ValidUntil,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceClients(ctx, p, linkedClients); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceTags(ctx, p, linkedTags); err != nil {
		return nil, err
	}
	p.Clients = linkedClients
	p.Tags = linkedTags

	s.indexAsync(p)
	s.logger.Info("Proposal created",
		zap.String("proposalID", p.ID.String()),
		zap.String("workspaceID", ws.ID.String()))
	return p, nil
}

// Update applies the non-nil fields of the request to an existing proposal.
func (s *Service) Update(ctx context.Context, userID, proposalID uuid.UUID, req UpdateProposalRequest) (*Proposal, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, ws.ID, proposalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, common.ErrBadRequest.WithDetails("Proposal title cannot be blank.")
		}
		p.Title = title
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if !status.IsValid() {
			return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown proposal status %q.", *req.Status))
		}
		p.Status = status
	}
	if req.ValueCents != nil {
		p.ValueCents = *req.ValueCents
	}
	if req.Deliverables != nil {
		p.Deliverables = *req.Deliverables
	}
	if req.ValidUntil != nil {
		p.ValidUntil = req.ValidUntil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.ClientIDs != nil {
		linkedClients, err := s.resolveClients(ctx, ws.ID, *req.ClientIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceClients(ctx, p, linkedClients); err != nil {
			return nil, err
		}
		p.Clients = linkedClients
	}
	if req.TagIDs != nil {
		linkedTags, err := s.resolveTags(ctx, ws.ID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTags(ctx, p, linkedTags); err != nil {
			return nil, err
		}
		p.Tags = linkedTags
	}

	s.indexAsync(p)
	return p, nil
}

// Delete removes a proposal and its search document.
func (s *Service) Delete(ctx context.Context, userID, proposalID uuid.UUID) error {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ws.ID, proposalID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Delete(ctx, proposalID); err != nil {
			s.logger.Warn("Failed to delete proposal search document",
				zap.String("proposalID", proposalID.String()), zap.Error(err))
		}
	}
	return nil
}

// Search runs a free-text query against the search index and hydrates the
// hits from the database in relevance order.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, query string, page, pageSize int) ([]Proposal, *common.Pagination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("Search query cannot be blank.")
	}

	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if s.index == nil {
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Search is not available.")
	}

	ids, total, err := s.index.Search(ctx, ws.ID, query, page, pageSize)
	if err != nil {
		s.logger.Error("Proposal search failed", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Search is temporarily unavailable.")
	}

	proposals, err := s.repo.FindByIDs(ctx, ws.ID, ids)
	if err != nil {
		return nil, nil, err
	}

	// The database returns rows in arbitrary order; restore index relevance.
	byID := make(map[uuid.UUID]*Proposal, len(proposals))
	for i := range proposals {
		byID[proposals[i].ID] = &proposals[i]
	}
	ordered := make([]Proposal, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, *p)
		}
	}
	return ordered, common.NewPagination(total, page, pageSize), nil
}

func (s *Service) resolveClients(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]client.Client, error) {
	if len(ids) == 0 {
		return []client.Client{}, nil
	}
	found, err := s.clients.FindByIDs(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, common.ErrBadRequest.WithDetails("One or more client ids do not exist in this workspace.")
	}
	return found, nil
}

func (s *Service) resolveTags(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]tag.Tag, error) {
	if len(ids) == 0 {
		return []tag.Tag{}, nil
	}
	found, err := s.tags.FindByIDs(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, common.ErrBadRequest.WithDetails("One or more tag ids do not exist in this workspace.")
	}
	return found, nil
}

// indexAsync pushes the proposal into the search index without holding up the
// request. The reindex job repairs missed writes.
func (s *Service) indexAsync(p *Proposal) {
	if s.index == nil {
		return
	}
	snapshot := *p
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.index.Index(ctx, &snapshot); err != nil {
			s.logger.Warn("Failed to index proposal",
				zap.String("proposalID", snapshot.ID.String()), zap.Error(err))
		}
	}()
}
