// File: internal/session/events.go
package session

import (
	"sync"

	"go.uber.org/zap"

	"salehunt_backend/internal/shared"
)

// EventBus fans auth lifecycle events out to in-process subscribers. The
// auth handlers publish, the auth state manager subscribes.
type EventBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(shared.AuthEvent)
	logger *zap.Logger
}

func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		subs:   make(map[int]func(shared.AuthEvent)),
		logger: logger.Named("auth_events"),
	}
}

// Subscribe registers a handler and returns an unsubscribe func. Handlers
// run synchronously in publish order so that subscribers observe events in
// the order the provider reported them.
func (b *EventBus) Subscribe(fn func(shared.AuthEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers the event to every subscriber.
func (b *EventBus) Publish(ev shared.AuthEvent) {
	b.mu.RLock()
	handlers := make([]func(shared.AuthEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	b.logger.Debug("Publishing auth event",
		zap.String("type", string(ev.Type)),
		zap.String("firebase_uid", ev.FirebaseUID),
	)
	for _, fn := range handlers {
		fn(ev)
	}
}
