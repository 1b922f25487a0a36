// File: internal/authstate/manager_test.go
package authstate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/workspace"
)

type mockProfiles struct {
	mu      sync.Mutex
	byUID   map[string]*shared.Profile
	err     error
	calls   int32
	release chan struct{}
}

func (m *mockProfiles) GetByID(ctx context.Context, id uuid.UUID) (*shared.Profile, error) {
	return nil, common.ErrNotFound
}

func (m *mockProfiles) GetByFirebaseUID(ctx context.Context, uid string) (*shared.Profile, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.byUID[uid]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (m *mockProfiles) GetOrCreateFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (*shared.Profile, bool, error) {
	return nil, false, common.ErrNotFound
}

type mockLister struct {
	spaces []workspace.Workspace
	err    error
}

func (m *mockLister) List(ctx context.Context, ownerID uuid.UUID) ([]workspace.Workspace, error) {
	return m.spaces, m.err
}

func newTestProfile(uid string) *shared.Profile {
	return &shared.Profile{ID: uuid.New(), FirebaseUID: uid, OnboardingStep: 3}
}

func TestManagerStartsLoading(t *testing.T) {
	m := NewManager(&mockProfiles{}, &mockLister{}, 0, zap.NewNop())
	snap := m.Snapshot()
	assert.Equal(t, StatusLoading, snap.Status)
	assert.Nil(t, snap.Identity)
}

func TestLoadingTimeoutResolvesToSignedOut(t *testing.T) {
	m := NewManager(&mockProfiles{}, &mockLister{}, 20*time.Millisecond, zap.NewNop())

	require.Eventually(t, func() bool {
		return m.Snapshot().Status == StatusUnauthenticated
	}, time.Second, 5*time.Millisecond)
}

func TestInitializeBeatsTimeout(t *testing.T) {
	uid := "fb-1"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	m := NewManager(profiles, &mockLister{}, 500*time.Millisecond, zap.NewNop())

	m.Initialize(context.Background(), &shared.Identity{FirebaseUID: uid})

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)

	require.Eventually(t, func() bool {
		return m.Snapshot().Profile != nil
	}, time.Second, 5*time.Millisecond)

	// Well past the timeout, the session is still authenticated.
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, StatusAuthenticated, m.Snapshot().Status)
}

func TestInitializeNilIdentityResolvesSignedOut(t *testing.T) {
	m := NewManager(&mockProfiles{}, &mockLister{}, 0, zap.NewNop())
	m.Initialize(context.Background(), nil)
	assert.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
}

func TestProfileFetchErrorKeepsStaleProfile(t *testing.T) {
	uid := "fb-2"
	stale := newTestProfile(uid)
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: stale}}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())

	m.Initialize(context.Background(), &shared.Identity{FirebaseUID: uid})
	require.Eventually(t, func() bool {
		return m.Snapshot().Profile != nil
	}, time.Second, 5*time.Millisecond)

	profiles.mu.Lock()
	profiles.err = assert.AnError
	profiles.mu.Unlock()

	m.Refresh(context.Background())

	// The failed refresh leaves the previous profile in place.
	time.Sleep(50 * time.Millisecond)
	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, stale.ID, snap.Profile.ID)
}

func TestStaleFetchResultIsDropped(t *testing.T) {
	uid := "fb-3"
	release := make(chan struct{})
	profiles := &mockProfiles{
		byUID:   map[string]*shared.Profile{uid: newTestProfile(uid)},
		release: release,
	}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())

	m.Initialize(context.Background(), &shared.Identity{FirebaseUID: uid})

	// Sign out while the fetch is still in flight, then let it finish.
	m.SignOut()
	close(release)

	time.Sleep(50 * time.Millisecond)
	snap := m.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.Profile, "result from a superseded generation must not apply")
}

func TestDuplicateSignInEventsShareOneFetch(t *testing.T) {
	uid := "fb-8"
	release := make(chan struct{})
	profiles := &mockProfiles{
		byUID:   map[string]*shared.Profile{uid: newTestProfile(uid)},
		release: release,
	}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())
	ctx := context.Background()

	// The provider fires SIGNED_IN more than once for the same identity,
	// e.g. when both startup paths resolve. The second trigger must reuse
	// the fetch already in flight.
	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: uid})
	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: uid})

	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&profiles.calls), "duplicate trigger must not start a second fetch")

	close(release)
	require.Eventually(t, func() bool {
		return m.Snapshot().Profile != nil
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&profiles.calls))
}

func TestPasswordRecoveryIsStickyAcrossRefresh(t *testing.T) {
	uid := "fb-4"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())
	ctx := context.Background()

	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: uid})
	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventPasswordRecovery, FirebaseUID: uid})
	assert.True(t, m.Snapshot().PasswordRecovery)

	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventTokenRefreshed, FirebaseUID: uid})
	assert.True(t, m.Snapshot().PasswordRecovery, "token refresh must not clear the recovery flag")

	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventSignedOut, FirebaseUID: uid})
	snap := m.Snapshot()
	assert.False(t, snap.PasswordRecovery)
	assert.Equal(t, StatusUnauthenticated, snap.Status)
}

func TestClearPasswordRecoveryEndsOverrideWithoutSignOut(t *testing.T) {
	uid := "fb-9"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())
	ctx := context.Background()

	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: uid})
	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventPasswordRecovery, FirebaseUID: uid})
	assert.True(t, m.Snapshot().PasswordRecovery)

	// Setting the new password clears the flag; the session itself stays.
	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventRecoveryCleared, FirebaseUID: uid})
	snap := m.Snapshot()
	assert.False(t, snap.PasswordRecovery)
	assert.Equal(t, StatusAuthenticated, snap.Status)

	m.OnAuthEvent(ctx, shared.AuthEvent{Type: shared.EventPasswordRecovery, FirebaseUID: uid})
	m.ClearPasswordRecovery()
	assert.False(t, m.Snapshot().PasswordRecovery)
}

func TestSignOutClearsEverything(t *testing.T) {
	uid := "fb-5"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	lister := &mockLister{spaces: []workspace.Workspace{{ID: uuid.New()}}}
	m := NewManager(profiles, lister, 0, zap.NewNop())

	m.Initialize(context.Background(), &shared.Identity{FirebaseUID: uid})
	require.Eventually(t, func() bool {
		return m.Snapshot().Profile != nil
	}, time.Second, 5*time.Millisecond)

	m.SignOut()
	snap := m.Snapshot()
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.Identity)
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Workspaces)
}

func TestApplyProfileIsOptimistic(t *testing.T) {
	uid := "fb-6"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())
	m.Initialize(context.Background(), &shared.Identity{FirebaseUID: uid})

	updated := newTestProfile(uid)
	updated.OnboardingStep = 7
	m.ApplyProfile(updated)

	snap := m.Snapshot()
	require.NotNil(t, snap.Profile)
	assert.Equal(t, 7, snap.Profile.OnboardingStep)
}

func TestRepeatInitializeForSameIdentityIsNoop(t *testing.T) {
	uid := "fb-7"
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{uid: newTestProfile(uid)}}
	m := NewManager(profiles, &mockLister{}, 0, zap.NewNop())
	ctx := context.Background()

	m.Initialize(ctx, &shared.Identity{FirebaseUID: uid})
	require.Eventually(t, func() bool {
		return m.Snapshot().Profile != nil
	}, time.Second, 5*time.Millisecond)
	gen := m.Snapshot().Generation

	m.Initialize(ctx, &shared.Identity{FirebaseUID: uid})
	assert.Equal(t, gen, m.Snapshot().Generation, "re-resolving the same identity must not restart loading")
}

func TestRegistryRoutesEventsPerIdentity(t *testing.T) {
	profiles := &mockProfiles{byUID: map[string]*shared.Profile{
		"fb-a": newTestProfile("fb-a"),
		"fb-b": newTestProfile("fb-b"),
	}}
	r := &Registry{
		managers: make(map[string]*Manager),
		profiles: profiles,
		lister:   &mockLister{},
		logger:   zap.NewNop(),
	}

	r.dispatch(shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: "fb-a"})
	r.dispatch(shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: "fb-b"})
	r.dispatch(shared.AuthEvent{Type: shared.EventPasswordRecovery, FirebaseUID: "fb-a"})

	assert.True(t, r.ManagerFor("fb-a").Snapshot().PasswordRecovery)
	assert.False(t, r.ManagerFor("fb-b").Snapshot().PasswordRecovery)

	r.dispatch(shared.AuthEvent{Type: shared.EventSignedOut, FirebaseUID: "fb-a"})
	assert.Nil(t, r.Peek("fb-a"), "signed-out managers are dropped")
	assert.NotNil(t, r.Peek("fb-b"))
}
