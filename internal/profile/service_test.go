// File: internal/profile/service_test.go
package profile

import (
	"context"
	"testing"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
)

// mockRepository is a func-based mock of the Repository interface.
type mockRepository struct {
	createFunc            func(ctx context.Context, p *Profile) error
	findByIDFunc          func(ctx context.Context, id uuid.UUID) (*Profile, error)
	findByFirebaseUIDFunc func(ctx context.Context, uid string) (*Profile, error)
	findByEmailFunc       func(ctx context.Context, email string) (*Profile, error)
	updateFunc            func(ctx context.Context, p *Profile) error
	updateOnboardingFunc  func(ctx context.Context, id uuid.UUID, step int, completed bool) error
}

func (m *mockRepository) Create(ctx context.Context, p *Profile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, common.ErrNotFound
}

func (m *mockRepository) FindByFirebaseUID(ctx context.Context, uid string) (*Profile, error) {
	if m.findByFirebaseUIDFunc != nil {
		return m.findByFirebaseUIDFunc(ctx, uid)
	}
	return nil, common.ErrNotFound
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, common.ErrNotFound
}

func (m *mockRepository) Update(ctx context.Context, p *Profile) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockRepository) UpdateOnboarding(ctx context.Context, id uuid.UUID, step int, completed bool) error {
	if m.updateOnboardingFunc != nil {
		return m.updateOnboardingFunc(ctx, id, step, completed)
	}
	return nil
}

func newTestService(repo Repository) *ServiceImplementation {
	return NewService(repo, &config.Config{}, zap.NewNop())
}

func TestGetOrCreateFromFirebaseClaims_NewUser(t *testing.T) {
	var created *Profile
	repo := &mockRepository{
		createFunc: func(ctx context.Context, p *Profile) error {
			created = p
			return nil
		},
	}
	svc := newTestService(repo)

	token := &firebaseauth.Token{
		UID: "fb-new",
		Claims: map[string]interface{}{
			"email":   "Ana@Example.com",
			"name":    "Ana Souza",
			"picture": "https://example.com/ana.png",
		},
	}

	p, wasCreated, err := svc.GetOrCreateFromFirebaseClaims(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, wasCreated)
	require.NotNil(t, created)
	assert.Equal(t, "fb-new", created.FirebaseUID)
	require.NotNil(t, created.Email)
	assert.Equal(t, "ana@example.com", *created.Email, "emails are normalized on create")
	assert.Equal(t, 1, created.OnboardingStep)
	assert.False(t, p.OnboardingComplete())
}

func TestGetOrCreateFromFirebaseClaims_ExistingUserRefreshed(t *testing.T) {
	email := "ana@example.com"
	oldName := "Ana"
	existing := &Profile{
		ID:             uuid.New(),
		FirebaseUID:    "fb-existing",
		Email:          &email,
		FullName:       &oldName,
		OnboardingStep: 5,
	}
	var updated *Profile
	repo := &mockRepository{
		findByFirebaseUIDFunc: func(ctx context.Context, uid string) (*Profile, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, p *Profile) error {
			updated = p
			return nil
		},
	}
	svc := newTestService(repo)

	token := &firebaseauth.Token{
		UID: "fb-existing",
		Claims: map[string]interface{}{
			"email": email,
			"name":  "Ana Souza",
		},
	}

	p, wasCreated, err := svc.GetOrCreateFromFirebaseClaims(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, wasCreated)
	require.NotNil(t, updated)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Ana Souza", *updated.FullName)
	assert.NotNil(t, updated.LastLoginAt)
	assert.Equal(t, 5, p.OnboardingStep, "onboarding progress survives sign-in refresh")
}

func TestGetOrCreateFromFirebaseClaims_ConcurrentCreateConflict(t *testing.T) {
	winner := &Profile{ID: uuid.New(), FirebaseUID: "fb-race", OnboardingStep: 1}
	calls := 0
	repo := &mockRepository{
		findByFirebaseUIDFunc: func(ctx context.Context, uid string) (*Profile, error) {
			calls++
			if calls == 1 {
				return nil, common.ErrNotFound
			}
			return winner, nil
		},
		createFunc: func(ctx context.Context, p *Profile) error {
			return common.ErrConflict.WithDetails("A profile already exists for this identity.")
		},
	}
	svc := newTestService(repo)

	token := &firebaseauth.Token{UID: "fb-race", Claims: map[string]interface{}{}}
	p, wasCreated, err := svc.GetOrCreateFromFirebaseClaims(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, winner.ID, p.ID)
}

func TestSetOnboardingStep_ForwardOnly(t *testing.T) {
	existing := &Profile{ID: uuid.New(), FirebaseUID: "fb-steps", OnboardingStep: 4}
	var persistedStep int
	var persistedCompleted bool
	persisted := false
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*Profile, error) {
			return existing, nil
		},
		updateOnboardingFunc: func(ctx context.Context, id uuid.UUID, step int, completed bool) error {
			persisted = true
			persistedStep = step
			persistedCompleted = completed
			return nil
		},
	}
	svc := newTestService(repo)
	ctx := context.Background()

	// Backward navigation does not persist.
	require.NoError(t, svc.SetOnboardingStep(ctx, existing.ID, 3))
	assert.False(t, persisted)

	// Re-sending the current step does not persist either.
	require.NoError(t, svc.SetOnboardingStep(ctx, existing.ID, 4))
	assert.False(t, persisted)

	require.NoError(t, svc.SetOnboardingStep(ctx, existing.ID, 5))
	assert.True(t, persisted)
	assert.Equal(t, 5, persistedStep)
	assert.False(t, persistedCompleted)

	// Reaching the final step marks completion.
	require.NoError(t, svc.SetOnboardingStep(ctx, existing.ID, 8))
	assert.Equal(t, 8, persistedStep)
	assert.True(t, persistedCompleted)
}

func TestCompleteOnboardingWritesBothMarkers(t *testing.T) {
	var gotStep int
	var gotCompleted bool
	repo := &mockRepository{
		updateOnboardingFunc: func(ctx context.Context, id uuid.UUID, step int, completed bool) error {
			gotStep = step
			gotCompleted = completed
			return nil
		},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.CompleteOnboarding(context.Background(), uuid.New()))
	assert.Equal(t, 8, gotStep)
	assert.True(t, gotCompleted)
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	email := "ana@example.com"
	name := "Ana"
	avatar := "https://example.com/old.png"
	existing := &Profile{
		ID:        uuid.New(),
		Email:     &email,
		FullName:  &name,
		AvatarURL: &avatar,
		CreatedAt: time.Now(),
	}
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*Profile, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	newName := "Ana Souza"
	updated, err := svc.UpdateProfile(context.Background(), existing.ID, UpdateProfileRequest{FullName: &newName})
	require.NoError(t, err)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Ana Souza", *updated.FullName)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, avatar, *updated.AvatarURL)
}
