// File: internal/client/service.go
package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/workspace"
)

// WorkspaceResolver yields the caller's working workspace.
type WorkspaceResolver interface {
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
}

// Service provides client business logic.
type Service struct {
	repo       Repository
	workspaces WorkspaceResolver
	logger     *zap.Logger
}

// NewService creates a new client service.
func NewService(repo Repository, workspaces WorkspaceResolver, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		workspaces: workspaces,
		logger:     logger.Named("client_service"),
	}
}

// List returns a page of the workspace's clients, optionally filtered by a
// free-text search over name, company and email.
func (s *Service) List(ctx context.Context, userID uuid.UUID, search string, page, pageSize int) ([]Client, *common.Pagination, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	clients, total, err := s.repo.FindByWorkspace(ctx, ws.ID, strings.TrimSpace(search), page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return clients, common.NewPagination(total, page, pageSize), nil
}

// Get returns a single client from the caller's workspace.
func (s *Service) Get(ctx context.Context, userID, clientID uuid.UUID) (*Client, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, ws.ID, clientID)
}

// Create adds a client to the caller's workspace.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateClientRequest) (*Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, common.ErrBadRequest.WithDetails("Client name cannot be blank.")
	}

	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	cl := &Client{
		WorkspaceID: ws.ID,
		Name:        name,
		Email:       normalizeEmail(req.Email),
		Phone:       req.Phone,
		Company:     req.Company,
		Document:    req.Document,
	}
	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("clientID", cl.ID.String()),
		zap.String("workspaceID", ws.ID.String()))
	return cl, nil
}

// Update applies the non-nil fields of the request to an existing client.
func (s *Service) Update(ctx context.Context, userID, clientID uuid.UUID, req UpdateClientRequest) (*Client, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	cl, err := s.repo.FindByID(ctx, ws.ID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, common.ErrBadRequest.WithDetails("Client name cannot be blank.")
		}
		cl.Name = name
	}
	if req.Email != nil {
		cl.Email = normalizeEmail(req.Email)
	}
	if req.Phone != nil {
		cl.Phone = req.Phone
	}
	if req.Company != nil {
		cl.Company = req.Company
	}
	if req.Document != nil {
		cl.Document = req.Document
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// Delete removes a client from the caller's workspace. Proposal links cascade
// away at the database level.
func (s *Service) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ws.ID, clientID)
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return nil
	}
	return &normalized
}
