// Package framegate provides timestamp idempotency for the detection loop.
package framegate

import (
	"sync"
	"time"
)

// Stats is a snapshot of gate activity.
type Stats struct {
	// Frames is the count of genuinely new timestamps observed.
	Frames uint64
	// Duplicates is the count of repeated timestamps skipped.
	Duplicates uint64
}

// Gate tracks the last processed video timestamp so each distinct frame
// triggers at most one detection call. A paused video keeps presenting the
// same timestamp, so pause handling falls out of the same equality check.
type Gate struct {
	mu         sync.Mutex
	last       time.Duration
	seen       bool
	frames     uint64
	duplicates uint64
}

// New creates a Gate with an empty frame clock.
func New() *Gate {
	return &Gate{}
}

// Observe atomically checks whether ts is a new timestamp and records it
// if so. Returns true for a genuinely new frame (proceed with detection)
// and false for a repeat (skip this tick entirely).
func (g *Gate) Observe(ts time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen && ts == g.last {
		g.duplicates++
		return false
	}
	g.last = ts
	g.seen = true
	g.frames++
	return true
}

// Reset clears the frame clock. Call on stream restart, where timestamps
// begin again from zero.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = 0
	g.seen = false
}

// Last returns the most recently recorded timestamp and whether any frame
// has been observed since the last reset.
func (g *Gate) Last() (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.seen
}

// Stats returns a snapshot of gate activity since construction.
func (g *Gate) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{Frames: g.frames, Duplicates: g.duplicates}
}
