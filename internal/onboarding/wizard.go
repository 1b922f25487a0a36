// File: internal/onboarding/wizard.go
package onboarding

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/workspace"
)

// FirstStep and FinalStep bound the wizard. Reaching FinalStep marks the
// profile as onboarded.
const (
	FirstStep = 1
	FinalStep = 8
)

// ProfileStore is the slice of the profile service the wizard needs.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*shared.Profile, error)
	SetOnboardingStep(ctx context.Context, id uuid.UUID, step int) error
	CompleteOnboarding(ctx context.Context, id uuid.UUID) error
}

// WorkspaceStore is the slice of the workspace service the wizard needs.
type WorkspaceStore interface {
	EnsurePlaceholder(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error)
	Update(ctx context.Context, ownerID, workspaceID uuid.UUID, req workspace.UpdateWorkspaceRequest) (*workspace.Workspace, error)
}

// StepPayload carries the data a wizard step may submit. Which fields are
// required depends on the step.
type StepPayload struct {
	WorkspaceName *string `json:"workspace_name,omitempty" binding:"omitempty,max=200"`
	CNPJ          *string `json:"cnpj,omitempty" binding:"omitempty,max=20"`
	BrandColor    *string `json:"brand_color,omitempty" binding:"omitempty,hexcolor"`
	CompanySize   *string `json:"company_size,omitempty" binding:"omitempty,max=50"`
	MarketSector  *string `json:"market_sector,omitempty" binding:"omitempty,max=100"`
	TeamSize      *string `json:"team_size,omitempty" binding:"omitempty,max=50"`
}

// State is the wizard position returned to the frontend on entry, so a user
// who left mid-wizard resumes where they stopped.
type State struct {
	Step      int                          `json:"step"`
	Completed bool                         `json:"completed"`
	Workspace *workspace.WorkspaceResponse `json:"workspace,omitempty"`
}

// Wizard drives the onboarding flow: a fixed sequence of steps with
// per-step requirements, persisting progress forward only.
type Wizard struct {
	profiles   ProfileStore
	workspaces WorkspaceStore
	logger     *zap.Logger
}

// NewWizard creates the onboarding wizard.
func NewWizard(profiles ProfileStore, workspaces WorkspaceStore, logger *zap.Logger) *Wizard {
	return &Wizard{
		profiles:   profiles,
		workspaces: workspaces,
		logger:     logger,
	}
}

// StateFor resolves the wizard position for a user, creating the placeholder
// workspace on first entry.
func (w *Wizard) StateFor(ctx context.Context, userID uuid.UUID) (*State, error) {
	p, err := w.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ws, err := w.workspaces.EnsurePlaceholder(ctx, userID)
	if err != nil {
		return nil, err
	}

	step := p.OnboardingStep
	if step < FirstStep {
		step = FirstStep
	}
	resp := workspace.ToWorkspaceResponse(ws)
	return &State{
		Step:      step,
		Completed: p.OnboardingComplete(),
		Workspace: &resp,
	}, nil
}

// SubmitStep validates a step's requirements, applies its payload to the
// workspace and reports the next step. Progress persistence happens through
// the dispatcher afterwards; validation failures stop the advance here.
func (w *Wizard) SubmitStep(ctx context.Context, userID uuid.UUID, step int, payload StepPayload) (*State, error) {
	if step < FirstStep || step > FinalStep {
		return nil, common.ErrBadRequest.WithDetails("Unknown onboarding step.")
	}

	if err := validateStep(step, payload); err != nil {
		return nil, err
	}

	ws, err := w.workspaces.EnsurePlaceholder(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := workspace.UpdateWorkspaceRequest{
		Name:         payload.WorkspaceName,
		CNPJ:         payload.CNPJ,
		BrandColor:   payload.BrandColor,
		CompanySize:  payload.CompanySize,
		MarketSector: payload.MarketSector,
		TeamSize:     payload.TeamSize,
	}
	if update != (workspace.UpdateWorkspaceRequest{}) {
		ws, err = w.workspaces.Update(ctx, userID, ws.ID, update)
		if err != nil {
			return nil, err
		}
	}

	next := step + 1
	if next > FinalStep {
		next = FinalStep
	}
	resp := workspace.ToWorkspaceResponse(ws)
	return &State{
		Step:      next,
		Completed: step >= FinalStep,
		Workspace: &resp,
	}, nil
}

// Complete marks onboarding as finished.
func (w *Wizard) Complete(ctx context.Context, userID uuid.UUID) error {
	return w.profiles.CompleteOnboarding(ctx, userID)
}

// validateStep enforces the per-step required fields. Steps without an entry
// are informational and always pass.
func validateStep(step int, payload StepPayload) error {
	switch step {
	case 3:
		if payload.WorkspaceName == nil || strings.TrimSpace(*payload.WorkspaceName) == "" {
			return common.ErrBadRequest.WithDetails("Workspace name is required to continue.")
		}
	case 6:
		if payload.CompanySize == nil || strings.TrimSpace(*payload.CompanySize) == "" {
			return common.ErrBadRequest.WithDetails("Company size is required to continue.")
		}
	case 7:
		if payload.MarketSector == nil || strings.TrimSpace(*payload.MarketSector) == "" {
			return common.ErrBadRequest.WithDetails("Market sector is required to continue.")
		}
	case 8:
		if payload.TeamSize == nil || strings.TrimSpace(*payload.TeamSize) == "" {
			return common.ErrBadRequest.WithDetails("Team size is required to continue.")
		}
	}
	return nil
}
