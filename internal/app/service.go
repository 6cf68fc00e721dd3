// Package service owns the frame-synchronized measurement pipeline: video
// source -> frame gate -> detector -> geometry -> measurement state. It is
// the explicit pipeline context object; no package-level mutable state.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okian/wingspan/internal/adapters/detector"
	"github.com/okian/wingspan/internal/adapters/display"
	"github.com/okian/wingspan/internal/adapters/state"
	"github.com/okian/wingspan/internal/adapters/video"
	"github.com/okian/wingspan/internal/domain/calibration"
	"github.com/okian/wingspan/internal/domain/framegate"
	"github.com/okian/wingspan/internal/domain/geometry"
	"github.com/okian/wingspan/internal/domain/model"
	"github.com/okian/wingspan/pkg/logger"
	"github.com/okian/wingspan/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRefreshHz      = 60.0
	serviceStopTimeout    = 5 * time.Second
	millisecondsPerSecond = 1000
)

// Service implements the measurement pipeline with an explicit lifecycle.
// One tick runs at a time; detection calls never overlap because the next
// tick is armed only after the previous one completes.
type Service struct {
	// Collaborators
	source video.Source
	det    detector.Detector
	cal    *calibration.Model

	// Core components
	gate  *framegate.Gate
	store *state.SlotStore
	loop  *display.Loop

	// Configuration
	refreshHz float64
	sessionID string

	// State
	started     bool
	terminalErr error
	cancel      context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithVideoSource sets the video frame source.
func WithVideoSource(src video.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithDetector sets the landmark detector.
func WithDetector(det detector.Detector) Option {
	return func(s *Service) {
		if det != nil {
			s.det = det
		}
	}
}

// WithCalibration sets the calibration model.
func WithCalibration(cal *calibration.Model) Option {
	return func(s *Service) {
		if cal != nil {
			s.cal = cal
		}
	}
}

// WithRefreshRate sets the display refresh rate driving the tick loop.
func WithRefreshRate(hz float64) Option {
	return func(s *Service) {
		if hz > 0 {
			s.refreshHz = hz
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		refreshHz: defaultRefreshHz,
		sessionID: uuid.New().String(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the pipeline and launches the tick loop. A detector
// that fails to start is terminal: the error is surfaced once and the
// pipeline never runs. Retry policy, if any, belongs to the caller.
func (s *Service) Start(ctx context.Context) error {
	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("pipeline")
	}
	if s.source == nil || s.det == nil || s.cal == nil {
		s.terminalErr = ErrMissingCollaborator
		return ErrMissingCollaborator
	}

	if starter, ok := s.det.(detector.Starter); ok {
		if err := starter.Start(ctx); err != nil {
			s.terminalErr = err
			s.logger.Error(ctx, "detector failed to start", logger.Error(err))
			return err
		}
	}

	s.gate = framegate.New()
	s.store = state.NewSlotStore()
	s.loop = display.NewLoop(s.refreshHz, s.tick,
		display.WithLogger(s.logger.Named("loop")),
	)

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.loop.Run(loopCtx)

	s.started = true
	s.logger.Info(ctx, "measurement pipeline started",
		logger.String("session", s.sessionID),
		logger.String("mode", s.cal.Mode().String()),
		logger.Float64("refreshHz", s.refreshHz),
	)
	return nil
}

// Stop cancels the tick loop. The last published measurement stays in
// place; transient stops must not flicker consumers back to unavailable.
func (s *Service) Stop() {
	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), serviceStopTimeout)
	defer cancel()

	if s.cancel != nil {
		s.cancel()
	}
	if err := s.loop.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "tick loop did not stop cleanly", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "measurement pipeline stopped", logger.String("session", s.sessionID))
}

// tick processes at most one video frame: readiness check, timestamp gate,
// detection, measurement, publish. Skipped ticks leave state untouched.
func (s *Service) tick(ctx context.Context, _ time.Time) {
	start := time.Now()
	defer func() {
		metrics.RecordTickLatency(float64(time.Since(start).Microseconds()) / millisecondsPerSecond)
	}()

	if !s.source.Ready() {
		metrics.RecordFrameNotReady()
		return
	}
	width, height := s.source.Dimensions()
	if width == 0 || height == 0 {
		metrics.RecordFrameNotReady()
		return
	}

	ts := s.source.Timestamp()
	if !s.gate.Observe(ts) {
		metrics.RecordFrameDuplicate()
		return
	}
	metrics.RecordFrameProcessed()

	detectStart := time.Now()
	frame, err := s.det.Detect(ctx, width, height, ts)
	metrics.RecordDetectLatency(float64(time.Since(detectStart).Microseconds()) / millisecondsPerSecond)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// A failed detection stalls this tick only; the loop keeps running
		// and state keeps its last value.
		metrics.RecordDetectorError()
		s.logger.Warn(ctx, "detection failed",
			logger.Duration("timestamp", ts),
			logger.Error(err),
		)
		return
	}
	metrics.RecordDetection()

	m := geometry.Measure(frame, s.cal, float64(width), float64(height))
	s.store.Publish(ctx, m)

	if m.Span.Available || m.Distance.Available {
		metrics.RecordMeasurementAvailable()
		if m.Distance.Available {
			metrics.UpdateLatestDistance(m.Distance.CM)
		}
		if m.Span.Available {
			metrics.UpdateLatestSpan(m.Span.CM)
		}
	} else {
		metrics.RecordMeasurementUnavailable()
	}
}

// Latest returns the most recent measurement, or false before the first
// processed frame.
func (s *Service) Latest(ctx context.Context) (model.Measurement, bool) {
	if s.store == nil {
		return model.Measurement{}, false
	}
	return s.store.Latest(ctx)
}

// Err returns the terminal pipeline error, if any. A nil result with
// started=false simply means the pipeline has not been started yet.
func (s *Service) Err() error {
	return s.terminalErr
}

// SessionID returns the identifier for this pipeline run.
func (s *Service) SessionID() string {
	return s.sessionID
}

// GetStats returns pipeline statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"session":   s.sessionID,
		"started":   s.started,
		"refreshHz": s.refreshHz,
	}
	if s.cal != nil {
		stats["mode"] = s.cal.Mode().String()
	}
	if s.terminalErr != nil {
		stats["terminalError"] = s.terminalErr.Error()
	}
	if s.gate != nil {
		gs := s.gate.Stats()
		stats["framesProcessed"] = gs.Frames
		stats["framesDuplicate"] = gs.Duplicates
	}
	if s.store != nil {
		stats["measurementsPublished"] = s.store.Count(context.Background())
	}
	return stats
}
