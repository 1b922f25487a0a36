// File: internal/authstate/registry.go
package authstate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"salehunt_backend/internal/config"
	"salehunt_backend/internal/session"
	"salehunt_backend/internal/shared"
)

// Registry owns one Manager per signed-in identity and routes auth events
// from the session bus to the right one. Managers are created lazily and
// dropped on sign-out.
type Registry struct {
	mu       sync.Mutex
	managers map[string]*Manager

	profiles shared.ProfileService
	lister   WorkspaceLister
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRegistry creates the registry and subscribes it to the auth event bus.
func NewRegistry(cfg *config.Config, profiles shared.ProfileService, lister WorkspaceLister, bus *session.EventBus, logger *zap.Logger) *Registry {
	r := &Registry{
		managers: make(map[string]*Manager),
		profiles: profiles,
		lister:   lister,
		timeout:  cfg.GuardLoadingTimeout,
		logger:   logger,
	}
	bus.Subscribe(func(ev shared.AuthEvent) {
		r.dispatch(ev)
	})
	return r
}

// ManagerFor returns the manager for a provider uid, creating it when the
// identity signs in for the first time.
func (r *Registry) ManagerFor(firebaseUID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[firebaseUID]
	if !ok {
		m = NewManager(r.profiles, r.lister, r.timeout, r.logger)
		r.managers[firebaseUID] = m
	}
	return m
}

// Peek returns the manager for a uid without creating one.
func (r *Registry) Peek(firebaseUID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.managers[firebaseUID]
}

func (r *Registry) dispatch(ev shared.AuthEvent) {
	if ev.FirebaseUID == "" {
		return
	}

	if ev.Type == shared.EventSignedOut {
		r.mu.Lock()
		m := r.managers[ev.FirebaseUID]
		delete(r.managers, ev.FirebaseUID)
		r.mu.Unlock()
		if m != nil {
			m.OnAuthEvent(context.Background(), ev)
		}
		return
	}

	r.ManagerFor(ev.FirebaseUID).OnAuthEvent(context.Background(), ev)
}
