package video

import (
	"sync"
	"time"
)

// Default simulated source configuration constants.
const (
	defaultSimWidth  = 1280
	defaultSimHeight = 720
	defaultSimFPS    = 30.0
)

// SimSource is a wall-clock-driven Source for demos and tests. Timestamps
// advance in whole frame steps at the configured rate, so consecutive
// reads inside one frame interval repeat the same timestamp, exactly like
// a real video element sampled faster than it decodes.
type SimSource struct {
	mu       sync.Mutex
	width    int
	height   int
	fps      float64
	start    time.Time
	paused   bool
	pausedAt time.Duration
	now      func() time.Time
}

// SimOption applies a configuration option to the SimSource.
type SimOption func(*SimSource)

// WithSimDimensions sets the surface pixel dimensions.
func WithSimDimensions(width, height int) SimOption {
	return func(s *SimSource) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithSimFPS sets the simulated frame rate.
func WithSimFPS(fps float64) SimOption {
	return func(s *SimSource) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

// WithSimClock overrides the wall clock, for deterministic tests.
func WithSimClock(now func() time.Time) SimOption {
	return func(s *SimSource) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSimSource creates a playing simulated source.
func NewSimSource(opts ...SimOption) *SimSource {
	s := &SimSource{
		width:  defaultSimWidth,
		height: defaultSimHeight,
		fps:    defaultSimFPS,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	return s
}

// Timestamp returns the current presentation timestamp, quantized to
// frame boundaries.
func (s *SimSource) Timestamp() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return s.pausedAt
	}
	elapsed := s.now().Sub(s.start)
	frame := int64(elapsed.Seconds() * s.fps)
	return time.Duration(float64(frame) / s.fps * float64(time.Second))
}

// Dimensions returns the configured pixel dimensions.
func (s *SimSource) Dimensions() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Ready reports whether the source can be sampled.
func (s *SimSource) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.paused && s.width > 0 && s.height > 0
}

// Pause freezes the presentation timestamp at its current value.
func (s *SimSource) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	elapsed := s.now().Sub(s.start)
	frame := int64(elapsed.Seconds() * s.fps)
	s.pausedAt = time.Duration(float64(frame) / s.fps * float64(time.Second))
	s.paused = true
}

// Resume continues playback from the paused timestamp.
func (s *SimSource) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.start = s.now().Add(-s.pausedAt)
	s.paused = false
}
