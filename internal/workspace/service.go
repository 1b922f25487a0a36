// File: internal/workspace/service.go
package workspace

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
)

// Service holds the workspace business logic.
type Service struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new workspace service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// EnsurePlaceholder returns the owner's default workspace, creating an empty
// one when none exists yet. The onboarding wizard calls this on entry so
// that later steps always have a row to fill in.
func (s *Service) EnsurePlaceholder(ctx context.Context, ownerID uuid.UUID) (*Workspace, error) {
	existing, err := s.repo.FindDefaultByOwner(ctx, ownerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	w := &Workspace{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		BrandColor: DefaultBrandColor,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error("Failed to create placeholder workspace", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return nil, err
	}
	s.logger.Info("Placeholder workspace created", zap.String("workspaceID", w.ID.String()), zap.String("ownerID", ownerID.String()))
	return w, nil
}

// GetDefault returns the owner's default workspace.
func (s *Service) GetDefault(ctx context.Context, ownerID uuid.UUID) (*Workspace, error) {
	return s.repo.FindDefaultByOwner(ctx, ownerID)
}

// List returns all workspaces owned by the user, oldest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Workspace, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Update applies the provided fields to a workspace owned by ownerID. A new
// name refreshes the slug.
func (s *Service) Update(ctx context.Context, ownerID, workspaceID uuid.UUID, req UpdateWorkspaceRequest) (*Workspace, error) {
	w, err := s.repo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		s.logger.Warn("User attempted to update a workspace they do not own",
			zap.String("ownerID", ownerID.String()),
			zap.String("workspaceID", workspaceID.String()))
		return nil, common.ErrForbidden.WithDetails("You are not authorized to modify this workspace.")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, common.ErrBadRequest.WithDetails("Workspace name cannot be empty.")
		}
		w.Name = trimmed
		slugged := slug.Make(trimmed)
		w.Slug = &slugged
	}
	if req.CNPJ != nil {
		w.CNPJ = req.CNPJ
	}
	if req.BrandColor != nil {
		w.BrandColor = normalizeHex(*req.BrandColor)
	}
	if req.BrandLogoURL != nil {
		w.BrandLogoURL = req.BrandLogoURL
	}
	if req.CompanySize != nil {
		w.CompanySize = req.CompanySize
	}
	if req.MarketSector != nil {
		w.MarketSector = req.MarketSector
	}
	if req.TeamSize != nil {
		w.TeamSize = req.TeamSize
	}

	if err := s.repo.Update(ctx, w); err != nil {
		s.logger.Error("Failed to update workspace", zap.Error(err), zap.String("workspaceID", workspaceID.String()))
		return nil, err
	}
	return w, nil
}

// SaveColor records a custom brand color for later reuse in the picker.
func (s *Service) SaveColor(ctx context.Context, userID uuid.UUID, req CreateColorRequest) (*Color, error) {
	c := &Color{
		ID:        uuid.New(),
		Hex:       normalizeHex(req.Hex),
		CreatedBy: &userID,
	}
	if err := s.repo.SaveColor(ctx, c); err != nil {
		s.logger.Error("Failed to save custom color", zap.Error(err), zap.String("hex", c.Hex))
		return nil, err
	}
	return c, nil
}

// ListColors returns the user's saved custom colors, oldest first.
func (s *Service) ListColors(ctx context.Context, userID uuid.UUID) ([]Color, error) {
	return s.repo.FindColors(ctx, userID)
}

func normalizeHex(hex string) string {
	hex = strings.ToUpper(strings.TrimSpace(hex))
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return hex
}
