// File: internal/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/config"
	"salehunt_backend/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{SessionCacheTTL: time.Minute}
	return NewStore(cfg, nil, NewEventBus(logger), logger)
}

func TestStorePutGetDelete(t *testing.T) {
	store := newTestStore(t)
	email := "ana@example.com"
	sess := &Session{
		UserID:      uuid.New(),
		FirebaseUID: "uid-1",
		Email:       &email,
		SignedInAt:  time.Now(),
		LastSeenAt:  time.Now(),
	}

	require.NoError(t, store.Put(sess))

	got, err := store.Get("uid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.False(t, got.PasswordRecovery)

	require.NoError(t, store.Delete("uid-1"))
	got, err = store.Get("uid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreGetUnknownUID(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Get("nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMarkRecoveryIsSticky(t *testing.T) {
	store := newTestStore(t)
	sess := &Session{UserID: uuid.New(), FirebaseUID: "uid-2", SignedInAt: time.Now()}
	require.NoError(t, store.Put(sess))

	require.NoError(t, store.MarkRecovery("uid-2"))

	// A token refresh rewrites the record through the store; the flag must
	// survive it.
	refreshed, err := store.Get("uid-2")
	require.NoError(t, err)
	refreshed.LastSeenAt = time.Now()
	require.NoError(t, store.Put(refreshed))

	got, err := store.Get("uid-2")
	require.NoError(t, err)
	assert.True(t, got.PasswordRecovery)
}

func TestMarkRecoveryWithoutSessionIsNoop(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.MarkRecovery("ghost"))

	got, err := store.Get("ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventBusDeliversInOrder(t *testing.T) {
	bus := NewEventBus(zap.NewNop())

	var seen []shared.AuthEventType
	unsubscribe := bus.Subscribe(func(ev shared.AuthEvent) {
		seen = append(seen, ev.Type)
	})

	bus.Publish(shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: "uid-3"})
	bus.Publish(shared.AuthEvent{Type: shared.EventPasswordRecovery, FirebaseUID: "uid-3"})
	bus.Publish(shared.AuthEvent{Type: shared.EventSignedOut, FirebaseUID: "uid-3"})

	require.Len(t, seen, 3)
	assert.Equal(t, shared.EventSignedIn, seen[0])
	assert.Equal(t, shared.EventPasswordRecovery, seen[1])
	assert.Equal(t, shared.EventSignedOut, seen[2])

	unsubscribe()
	bus.Publish(shared.AuthEvent{Type: shared.EventSignedIn, FirebaseUID: "uid-3"})
	assert.Len(t, seen, 3)
}

func TestRevocationService(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryRevocationService(InMemoryRevocationConfig{
		DefaultExpiration: time.Hour,
		CleanupInterval:   time.Hour,
	})

	issuedBefore := time.Now().Add(-time.Minute)
	require.NoError(t, svc.Revoke(ctx, "uid-4", time.Hour))

	revoked, err := svc.IsRevoked(ctx, "uid-4", issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked, "tokens issued before revocation are rejected")

	issuedAfter := time.Now().Add(time.Minute)
	revoked, err = svc.IsRevoked(ctx, "uid-4", issuedAfter)
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued after revocation stay valid")

	revoked, err = svc.IsRevoked(ctx, "uid-other", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)
}
