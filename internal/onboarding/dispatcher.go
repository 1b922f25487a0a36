// File: internal/onboarding/dispatcher.go
package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// progressWrite is one queued step persistence request.
type progressWrite struct {
	userID uuid.UUID
	step   int
}

// Dispatcher persists wizard progress off the request path. Step writes are
// fire-and-forget: the response never waits on them and a failed write only
// logs, because losing one step of progress is cheaper than blocking the
// wizard.
type Dispatcher struct {
	profiles ProfileStore
	queue    chan progressWrite
	done     chan struct{}
	logger   *zap.Logger
}

// NewDispatcher creates the dispatcher and starts its worker.
func NewDispatcher(profiles ProfileStore, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		profiles: profiles,
		queue:    make(chan progressWrite, 256),
		done:     make(chan struct{}),
		logger:   logger.Named("onboarding_dispatcher"),
	}
	go d.run()
	return d
}

// RecordStep queues a progress write. When the queue is full the write is
// dropped rather than blocking the caller.
func (d *Dispatcher) RecordStep(userID uuid.UUID, step int) {
	select {
	case d.queue <- progressWrite{userID: userID, step: step}:
	default:
		d.logger.Warn("Progress queue full; dropping step write",
			zap.String("userID", userID.String()),
			zap.Int("step", step))
	}
}

func (d *Dispatcher) run() {
	for w := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.profiles.SetOnboardingStep(ctx, w.userID, w.step); err != nil {
			d.logger.Warn("Failed to persist onboarding step",
				zap.Error(err),
				zap.String("userID", w.userID.String()),
				zap.Int("step", w.step))
		}
		cancel()
	}
	close(d.done)
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
