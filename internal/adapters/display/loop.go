// Package display provides the display-synchronized callback loop that
// paces the pipeline.
package display

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/wingspan/pkg/logger"
)

// Default loop configuration constants.
const (
	defaultRefreshHz    = 60.0
	loopShutdownTimeout = 5 * time.Second
)

// Tick is the per-display-frame callback. Ticks never overlap: the next
// one is armed only after the current one returns, so a slow tick stalls
// itself only and detection calls stay serialized.
type Tick func(ctx context.Context, now time.Time)

// Loop invokes a tick once per display frame until canceled. It is the Go
// rendition of a self-rescheduling animation callback: a timer re-armed
// after each completed tick, with cancellation checked before each re-arm.
type Loop struct {
	interval time.Duration
	tick     Tick
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Loop.
type Option func(*Loop)

// WithName sets the loop name used in logs.
func WithName(name string) Option {
	return func(l *Loop) {
		if name != "" {
			l.name = name
		}
	}
}

// WithLogger sets a custom logger for the loop.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loop) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoop creates a loop firing at the display refresh rate.
func NewLoop(refreshHz float64, tick Tick, opts ...Option) *Loop {
	if refreshHz <= 0 {
		refreshHz = defaultRefreshHz
	}
	l := &Loop{
		interval: time.Duration(float64(time.Second) / refreshHz),
		tick:     tick,
		name:     "display-loop",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named(l.name)
	}
	return l
}

// Run drives ticks until ctx is canceled or Shutdown is called. A canceled
// loop performs no further ticks; whatever state the last tick published
// stays in place.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.shutdown:
			return
		case now := <-timer.C:
			l.tick(ctx, now)
			// Re-arm only after the tick completes, and only if we are
			// still supposed to be running.
			select {
			case <-ctx.Done():
				return
			case <-l.shutdown:
				return
			default:
				timer.Reset(l.interval)
			}
		}
	}
}

// Shutdown withdraws the pending tick and waits for the loop to exit.
func (l *Loop) Shutdown(ctx context.Context) error {
	select {
	case <-l.shutdown:
		// Already shutting down.
	default:
		close(l.shutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, loopShutdownTimeout)
	defer cancel()

	select {
	case <-l.done:
		return nil
	case <-shutdownCtx.Done():
		l.logger.Warn(ctx, "loop shutdown timed out")
		return fmt.Errorf("loop shutdown timed out: %w", shutdownCtx.Err())
	}
}

// Interval returns the configured tick interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}
