// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/shared"
)

// ServiceImplementation implements the shared.ProfileService interface.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

var _ shared.ProfileService = (*ServiceImplementation)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*shared.Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error finding profile by ID", zap.Error(err), zap.String("profileID", id.String()))
		}
		return nil, err
	}
	return p.ToShared(), nil
}

func (s *ServiceImplementation) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*shared.Profile, error) {
	p, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error finding profile by Firebase UID", zap.Error(err), zap.String("firebaseUID", firebaseUID))
		}
		return nil, err
	}
	return p.ToShared(), nil
}

// GetOrCreateFromFirebaseClaims resolves the verified token to a local
// profile, creating it on first sign-in. Name and picture claims refresh the
// stored profile on every call so the dashboard tracks provider-side edits.
func (s *ServiceImplementation) GetOrCreateFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (*shared.Profile, bool, error) {
	p, err := s.repo.FindByFirebaseUID(ctx, token.UID)
	if err == nil {
		changed := applyClaims(p, token)
		now := time.Now()
		p.LastLoginAt = &now
		if err := s.repo.Update(ctx, p); err != nil {
			// The profile still exists; a failed bookkeeping update must not
			// fail the sign-in.
			s.logger.Error("Failed to update profile from claims", zap.Error(err), zap.String("profileID", p.ID.String()))
		} else if changed {
			s.logger.Info("Profile refreshed from provider claims", zap.String("profileID", p.ID.String()))
		}
		return p.ToShared(), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Error finding profile by Firebase UID", zap.Error(err), zap.String("firebaseUID", token.UID))
		return nil, false, fmt.Errorf("failed to look up profile: %w", err)
	}

	now := time.Now()
	newProfile := &Profile{
		ID:             uuid.New(),
		FirebaseUID:    token.UID,
		OnboardingStep: 1,
		LastLoginAt:    &now,
	}
	applyClaims(newProfile, token)

	if err := s.repo.Create(ctx, newProfile); err != nil {
		// A concurrent first sign-in may have created the row between the
		// lookup and the insert.
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrConflict.Code {
			existing, findErr := s.repo.FindByFirebaseUID(ctx, token.UID)
			if findErr == nil {
				return existing.ToShared(), false, nil
			}
		}
		s.logger.Error("Failed to create profile from claims", zap.Error(err), zap.String("firebaseUID", token.UID))
		return nil, false, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("New profile created from provider claims",
		zap.String("profileID", newProfile.ID.String()),
		zap.String("firebaseUID", token.UID))
	return newProfile.ToShared(), true, nil
}

// UpdateProfile applies the editable fields and returns the fresh profile.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*shared.Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err), zap.String("profileID", id.String()))
		return nil, err
	}
	return p.ToShared(), nil
}

// SetOnboardingStep records wizard progress. Steps only move forward here;
// navigating back in the wizard does not persist.
func (s *ServiceImplementation) SetOnboardingStep(ctx context.Context, id uuid.UUID, step int) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if step <= p.OnboardingStep {
		return nil
	}
	completed := p.OnboardingCompleted || step >= 8
	return s.repo.UpdateOnboarding(ctx, id, step, completed)
}

// CompleteOnboarding writes both completion markers together.
func (s *ServiceImplementation) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateOnboarding(ctx, id, 8, true)
}

func applyClaims(p *Profile, token *firebaseauth.Token) bool {
	changed := false
	if emailClaim, ok := token.Claims["email"].(string); ok && emailClaim != "" {
		normalized := strings.ToLower(strings.TrimSpace(emailClaim))
		if p.Email == nil || *p.Email != normalized {
			p.Email = &normalized
			changed = true
		}
	}
	if nameClaim, ok := token.Claims["name"].(string); ok && nameClaim != "" {
		if p.FullName == nil || *p.FullName != nameClaim {
			nameCopy := nameClaim
			p.FullName = &nameCopy
			changed = true
		}
	}
	if pictureClaim, ok := token.Claims["picture"].(string); ok && pictureClaim != "" {
		if p.AvatarURL == nil || *p.AvatarURL != pictureClaim {
			pictureCopy := pictureClaim
			p.AvatarURL = &pictureCopy
			changed = true
		}
	}
	return changed
}
