// File: internal/session/blocklist.go
package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RevocationService tracks sessions that were ended server-side. Provider ID
// tokens stay valid until they expire, so sign-out records the revocation
// instant and the auth middleware rejects any token issued before it.
type RevocationService interface {
	Revoke(ctx context.Context, firebaseUID string, tokenTTL time.Duration) error
	IsRevoked(ctx context.Context, firebaseUID string, issuedAt time.Time) (bool, error)
}

// InMemoryRevocationService implements RevocationService on an expiring
// in-process cache. Entries outlive the longest possible token lifetime and
// then fall out on their own.
type InMemoryRevocationService struct {
	cache *gocache.Cache
}

// InMemoryRevocationConfig holds cache tuning for the revocation service.
type InMemoryRevocationConfig struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
}

func NewInMemoryRevocationService(cfg InMemoryRevocationConfig) *InMemoryRevocationService {
	return &InMemoryRevocationService{
		cache: gocache.New(cfg.DefaultExpiration, cfg.CleanupInterval),
	}
}

// Revoke records the revocation instant for a uid.
func (s *InMemoryRevocationService) Revoke(ctx context.Context, firebaseUID string, tokenTTL time.Duration) error {
	if tokenTTL <= 0 {
		tokenTTL = gocache.DefaultExpiration
	}
	s.cache.Set(firebaseUID, time.Now(), tokenTTL)
	return nil
}

// IsRevoked reports whether a token issued at issuedAt predates a recorded
// revocation for the uid.
func (s *InMemoryRevocationService) IsRevoked(ctx context.Context, firebaseUID string, issuedAt time.Time) (bool, error) {
	v, found := s.cache.Get(firebaseUID)
	if !found {
		return false, nil
	}
	revokedAt := v.(time.Time)
	return !issuedAt.After(revokedAt), nil
}
