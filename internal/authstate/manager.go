// File: internal/authstate/manager.go
package authstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/workspace"
)

// Status is the resolution state of a session's auth check.
type Status string

const (
	// StatusLoading means the session has not been resolved yet. Guards
	// render a placeholder instead of redirecting while in this state.
	StatusLoading Status = "loading"
	// StatusAuthenticated means a verified identity is attached.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means resolution finished with no identity.
	StatusUnauthenticated Status = "unauthenticated"
)

// WorkspaceLister is the slice of the workspace service the manager needs.
type WorkspaceLister interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]workspace.Workspace, error)
}

// Snapshot is an immutable view of the session's auth state at one instant.
type Snapshot struct {
	Status           Status
	Identity         *shared.Identity
	Profile          *shared.Profile
	Workspaces       []workspace.Workspace
	PasswordRecovery bool
	Generation       uint64
}

// Manager is the state machine for one authenticated browser session. Two
// resolution paths race at startup (the session probe and the provider's
// auth event stream); the generation counter makes sure a stale async result
// can never clobber newer state.
type Manager struct {
	mu         sync.Mutex
	status     Status
	identity   *shared.Identity
	profile    *shared.Profile
	workspaces []workspace.Workspace
	recovery   bool
	generation uint64

	// inflight maps a provider uid to the generation its running fetch
	// will satisfy. One fetch per uid at a time; a later trigger for the
	// same uid adopts the running fetch instead of starting another.
	inflight map[string]uint64

	profiles shared.ProfileService
	lister   WorkspaceLister
	timeout  time.Duration
	logger   *zap.Logger

	timer *time.Timer
}

// NewManager creates a manager in the loading state and arms the safety
// timeout: if nothing resolves the session in time, it is treated as signed
// out rather than leaving the caller on a spinner forever.
func NewManager(profiles shared.ProfileService, workspaces WorkspaceLister, timeout time.Duration, logger *zap.Logger) *Manager {
	m := &Manager{
		status:   StatusLoading,
		inflight: make(map[string]uint64),
		profiles: profiles,
		lister:   workspaces,
		timeout:  timeout,
		logger:   logger.Named("authstate"),
	}
	if timeout > 0 {
		m.timer = time.AfterFunc(timeout, m.onLoadingTimeout)
	}
	return m
}

func (m *Manager) onLoadingTimeout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusLoading {
		return
	}
	m.logger.Warn("Auth resolution timed out; treating session as signed out")
	m.generation++
	m.status = StatusUnauthenticated
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Initialize resolves the session from a verified identity. It is safe to
// call from either startup path; whichever lands first wins and the second
// call is a cheap no-op for the same identity.
func (m *Manager) Initialize(ctx context.Context, identity *shared.Identity) {
	m.mu.Lock()
	if m.status == StatusAuthenticated && m.identity != nil && identity != nil &&
		m.identity.FirebaseUID == identity.FirebaseUID {
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	m.generation++
	gen := m.generation

	if identity == nil {
		m.status = StatusUnauthenticated
		m.identity = nil
		m.profile = nil
		m.workspaces = nil
		m.mu.Unlock()
		return
	}

	m.status = StatusAuthenticated
	m.identity = identity
	m.mu.Unlock()

	m.loadAsync(ctx, gen, identity)
}

// OnAuthEvent applies a provider lifecycle event to the state machine.
func (m *Manager) OnAuthEvent(ctx context.Context, ev shared.AuthEvent) {
	switch ev.Type {
	case shared.EventSignedIn, shared.EventTokenRefreshed, shared.EventUserUpdated:
		m.mu.Lock()
		m.stopTimerLocked()
		m.generation++
		gen := m.generation
		m.status = StatusAuthenticated
		if m.identity == nil || m.identity.FirebaseUID != ev.FirebaseUID {
			m.identity = &shared.Identity{ID: ev.UserID, FirebaseUID: ev.FirebaseUID, Email: ev.Email}
		}
		identity := m.identity
		m.mu.Unlock()
		m.loadAsync(ctx, gen, identity)

	case shared.EventPasswordRecovery:
		m.mu.Lock()
		// Sticky until explicitly cleared or signed out. A TOKEN_REFRESHED
		// arriving later must not clear it, or the user could skip the new
		// password form.
		m.recovery = true
		m.mu.Unlock()

	case shared.EventRecoveryCleared:
		m.ClearPasswordRecovery()

	case shared.EventSignedOut:
		m.mu.Lock()
		m.stopTimerLocked()
		m.generation++
		m.status = StatusUnauthenticated
		m.identity = nil
		m.profile = nil
		m.workspaces = nil
		m.recovery = false
		m.mu.Unlock()
	}
}

// ClearPasswordRecovery ends the recovery override once the user has set a
// new password. The session stays authenticated; only the routing override
// goes away.
func (m *Manager) ClearPasswordRecovery() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recovery = false
}

// loadAsync fetches profile and workspaces off the calling goroutine. The
// fetch is single-flight per identity: a second trigger for the same uid
// while one is in flight is dropped, and the running fetch satisfies the
// newer generation. Results from a superseded generation are discarded.
func (m *Manager) loadAsync(ctx context.Context, gen uint64, identity *shared.Identity) {
	uid := identity.FirebaseUID

	m.mu.Lock()
	if _, running := m.inflight[uid]; running {
		m.inflight[uid] = gen
		m.mu.Unlock()
		return
	}
	m.inflight[uid] = gen
	m.mu.Unlock()

	go func() {
		p, err := m.profiles.GetByFirebaseUID(ctx, uid)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				m.logger.Info("No profile yet for identity", zap.String("firebase_uid", uid))
			} else {
				// A transient fetch failure keeps whatever profile we had.
				// Stale data beats an empty dashboard.
				m.logger.Warn("Profile fetch failed; keeping previous profile", zap.Error(err))
			}
			m.mu.Lock()
			delete(m.inflight, uid)
			m.mu.Unlock()
			return
		}

		var spaces []workspace.Workspace
		if m.lister != nil {
			spaces, err = m.lister.List(ctx, p.ID)
			if err != nil {
				m.logger.Warn("Workspace list failed; keeping previous workspaces", zap.Error(err))
				spaces = nil
			}
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		gen = m.inflight[uid]
		delete(m.inflight, uid)
		if m.generation != gen {
			m.logger.Debug("Dropping stale profile fetch result",
				zap.Uint64("fetched_generation", gen),
				zap.Uint64("current_generation", m.generation))
			return
		}
		m.profile = p
		if spaces != nil {
			m.workspaces = spaces
		}
		if m.identity != nil {
			m.identity.ID = p.ID
		}
	}()
}

// Refresh re-fetches profile and workspaces for the current identity.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	if m.status != StatusAuthenticated || m.identity == nil {
		m.mu.Unlock()
		return
	}
	m.generation++
	gen := m.generation
	identity := m.identity
	m.mu.Unlock()
	m.loadAsync(ctx, gen, identity)
}

// ApplyProfile installs a profile optimistically, e.g. right after an
// onboarding step wrote it, without waiting for a round trip.
func (m *Manager) ApplyProfile(p *shared.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return
	}
	m.generation++
	m.profile = p
}

// SignOut clears local state immediately. It is the same transition the
// SIGNED_OUT event takes, exposed for callers that hold the manager directly.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.generation++
	m.status = StatusUnauthenticated
	m.identity = nil
	m.profile = nil
	m.workspaces = nil
	m.recovery = false
}

// Snapshot returns a consistent view of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Status:           m.status,
		Identity:         m.identity,
		Profile:          m.profile,
		Workspaces:       m.workspaces,
		PasswordRecovery: m.recovery,
		Generation:       m.generation,
	}
}
