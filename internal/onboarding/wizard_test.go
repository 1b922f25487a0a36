// File: internal/onboarding/wizard_test.go
package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/workspace"
)

type mockProfileStore struct {
	profile       *shared.Profile
	recordedSteps []int
	completed     bool
}

func (m *mockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*shared.Profile, error) {
	if m.profile == nil {
		return nil, common.ErrNotFound
	}
	return m.profile, nil
}

func (m *mockProfileStore) SetOnboardingStep(ctx context.Context, id uuid.UUID, step int) error {
	m.recordedSteps = append(m.recordedSteps, step)
	return nil
}

func (m *mockProfileStore) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	m.completed = true
	return nil
}

type mockWorkspaceStore struct {
	ws        *workspace.Workspace
	lastReq   workspace.UpdateWorkspaceRequest
	updateErr error
}

func (m *mockWorkspaceStore) EnsurePlaceholder(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	if m.ws == nil {
		m.ws = &workspace.Workspace{ID: uuid.New(), OwnerID: ownerID, BrandColor: workspace.DefaultBrandColor}
	}
	return m.ws, nil
}

func (m *mockWorkspaceStore) Update(ctx context.Context, ownerID, workspaceID uuid.UUID, req workspace.UpdateWorkspaceRequest) (*workspace.Workspace, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastReq = req
	if req.Name != nil {
		m.ws.Name = *req.Name
	}
	if req.CompanySize != nil {
		m.ws.CompanySize = req.CompanySize
	}
	if req.MarketSector != nil {
		m.ws.MarketSector = req.MarketSector
	}
	if req.TeamSize != nil {
		m.ws.TeamSize = req.TeamSize
	}
	return m.ws, nil
}

func strPtr(s string) *string { return &s }

func TestStateForResumesAtStoredStep(t *testing.T) {
	userID := uuid.New()
	profiles := &mockProfileStore{profile: &shared.Profile{ID: userID, OnboardingStep: 5}}
	workspaces := &mockWorkspaceStore{}
	w := NewWizard(profiles, workspaces, zap.NewNop())

	state, err := w.StateFor(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 5, state.Step)
	assert.False(t, state.Completed)
	require.NotNil(t, state.Workspace, "entering the wizard always yields a workspace row")
}

func TestStateForClampsStepToFirst(t *testing.T) {
	userID := uuid.New()
	profiles := &mockProfileStore{profile: &shared.Profile{ID: userID, OnboardingStep: 0}}
	w := NewWizard(profiles, &mockWorkspaceStore{}, zap.NewNop())

	state, err := w.StateFor(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, FirstStep, state.Step)
}

func TestSubmitStepGating(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		payload StepPayload
		wantErr bool
	}{
		{name: "informational step passes empty", step: 1, payload: StepPayload{}},
		{name: "step three requires workspace name", step: 3, payload: StepPayload{}, wantErr: true},
		{name: "step three passes with name", step: 3, payload: StepPayload{WorkspaceName: strPtr("Acme")}},
		{name: "blank name does not count", step: 3, payload: StepPayload{WorkspaceName: strPtr("   ")}, wantErr: true},
		{name: "step six requires company size", step: 6, payload: StepPayload{}, wantErr: true},
		{name: "step six passes with company size", step: 6, payload: StepPayload{CompanySize: strPtr("11-50")}},
		{name: "step seven requires market sector", step: 7, payload: StepPayload{}, wantErr: true},
		{name: "step seven passes with sector", step: 7, payload: StepPayload{MarketSector: strPtr("tecnologia")}},
		{name: "step eight requires team size", step: 8, payload: StepPayload{}, wantErr: true},
		{name: "step eight passes with team size", step: 8, payload: StepPayload{TeamSize: strPtr("2-5")}},
		{name: "step zero is rejected", step: 0, payload: StepPayload{}, wantErr: true},
		{name: "step nine is rejected", step: 9, payload: StepPayload{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			w := NewWizard(&mockProfileStore{profile: &shared.Profile{ID: userID}}, &mockWorkspaceStore{}, zap.NewNop())
			_, err := w.SubmitStep(context.Background(), userID, tt.step, tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitStepAdvancesAndApplies(t *testing.T) {
	userID := uuid.New()
	workspaces := &mockWorkspaceStore{}
	w := NewWizard(&mockProfileStore{profile: &shared.Profile{ID: userID}}, workspaces, zap.NewNop())

	state, err := w.SubmitStep(context.Background(), userID, 3, StepPayload{WorkspaceName: strPtr("Acme Vendas")})
	require.NoError(t, err)
	assert.Equal(t, 4, state.Step)
	assert.False(t, state.Completed)
	assert.Equal(t, "Acme Vendas", state.Workspace.Name)
}

func TestSubmitFinalStepMarksCompleted(t *testing.T) {
	userID := uuid.New()
	w := NewWizard(&mockProfileStore{profile: &shared.Profile{ID: userID}}, &mockWorkspaceStore{}, zap.NewNop())

	state, err := w.SubmitStep(context.Background(), userID, FinalStep, StepPayload{TeamSize: strPtr("2-5")})
	require.NoError(t, err)
	assert.Equal(t, FinalStep, state.Step, "the wizard never advances past the final step")
	assert.True(t, state.Completed)
}

func TestDispatcherPersistsStepsInOrder(t *testing.T) {
	profiles := &mockProfileStore{profile: &shared.Profile{ID: uuid.New()}}
	d := NewDispatcher(profiles, zap.NewNop())

	userID := uuid.New()
	d.RecordStep(userID, 2)
	d.RecordStep(userID, 3)
	d.RecordStep(userID, 4)
	d.Close()

	require.Len(t, profiles.recordedSteps, 3)
	assert.Equal(t, []int{2, 3, 4}, profiles.recordedSteps)
}

func TestDispatcherSwallowsWriteErrors(t *testing.T) {
	profiles := &failingProfileStore{}
	d := NewDispatcher(profiles, zap.NewNop())

	d.RecordStep(uuid.New(), 2)
	// Close drains the queue; the failed write must not panic or block.
	done := make(chan struct{})
	go func() {
		d.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not drain after a write error")
	}
}

type failingProfileStore struct{}

func (f *failingProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*shared.Profile, error) {
	return nil, common.ErrNotFound
}

func (f *failingProfileStore) SetOnboardingStep(ctx context.Context, id uuid.UUID, step int) error {
	return assert.AnError
}

func (f *failingProfileStore) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return assert.AnError
}
