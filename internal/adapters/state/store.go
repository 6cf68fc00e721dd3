// Package state holds the latest measurement for read-only consumers.
package state

import (
	"context"
	"sync/atomic"

	"github.com/okian/wingspan/internal/domain/model"
)

// Store provides write access for the pipeline and read access for the
// presentation layer. Consumers never mutate the measurement.
type Store interface {
	// Publish replaces the current measurement atomically.
	Publish(ctx context.Context, m model.Measurement)

	// Latest returns the current measurement, or false before the first
	// publish (and after a Reset).
	Latest(ctx context.Context) (model.Measurement, bool)

	// Count returns the number of measurements published since construction.
	Count(ctx context.Context) int64
}

// SlotStore implements Store as a single atomically-replaced slot. The
// whole Measurement value swaps at once, so a reader can never observe an
// old span next to a new distance.
type SlotStore struct {
	current   atomic.Pointer[model.Measurement]
	published atomic.Int64
}

// NewSlotStore creates an empty store.
func NewSlotStore() *SlotStore {
	return &SlotStore{}
}

// Publish replaces the current measurement atomically.
func (s *SlotStore) Publish(_ context.Context, m model.Measurement) {
	s.current.Store(&m)
	s.published.Add(1)
}

// Latest returns the current measurement, or false if nothing has been
// published yet.
func (s *SlotStore) Latest(_ context.Context) (model.Measurement, bool) {
	p := s.current.Load()
	if p == nil {
		return model.Measurement{}, false
	}
	return *p, true
}

// Count returns the number of measurements published since construction.
func (s *SlotStore) Count(_ context.Context) int64 {
	return s.published.Load()
}

// Reset drops the current measurement. Cancellation of the pipeline does
// not call this; it exists for explicit stream-restart handling where
// stale values must not survive.
func (s *SlotStore) Reset() {
	s.current.Store(nil)
}
