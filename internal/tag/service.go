// File: internal/tag/service.go
package tag

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/workspace"
)

// WorkspaceResolver yields the caller's working workspace. Records are always
// scoped to it.
type WorkspaceResolver interface {
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
}

// Service provides tag business logic.
type Service struct {
	repo       Repository
	workspaces WorkspaceResolver
	logger     *zap.Logger
}

// NewService creates a new tag service.
func NewService(repo Repository, workspaces WorkspaceResolver, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		workspaces: workspaces,
		logger:     logger.Named("tag_service"),
	}
}

// List returns all tags in the caller's workspace ordered by text.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Tag, error) {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByWorkspace(ctx, ws.ID)
}

// FindOrCreate returns the workspace tag matching the text, creating it when
// it does not exist yet. Text is matched after trimming; the stored casing is
// whatever the first creator used.
func (s *Service) FindOrCreate(ctx context.Context, userID uuid.UUID, req CreateTagRequest) (*Tag, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, common.ErrBadRequest.WithDetails("Tag text cannot be blank.")
	}

	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByText(ctx, ws.ID, text)
	if err == nil {
		return existing, nil
	}
	if apiErr, ok := common.IsAPIError(err); !ok || apiErr.Code != common.ErrNotFound.Code {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = DefaultColor
	}
	t := &Tag{
		WorkspaceID: ws.ID,
		Text:        text,
		Color:       strings.ToUpper(color),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		// A concurrent request may have created the tag between the lookup
		// and the insert. The existing row wins.
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrConflict.Code {
			return s.repo.FindByText(ctx, ws.ID, text)
		}
		return nil, err
	}

	s.logger.Debug("Tag created", zap.String("workspaceID", ws.ID.String()), zap.String("text", text))
	return t, nil
}

// Delete removes a tag from the caller's workspace. Join rows on proposals
// cascade away at the database level.
func (s *Service) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	ws, err := s.workspaces.GetDefault(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ws.ID, tagID)
}
