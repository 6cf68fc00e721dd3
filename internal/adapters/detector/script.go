package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/okian/wingspan/internal/domain/pose"
)

// Script implements Detector by replaying a fixed sequence of pose frames,
// one per detect call. It stands in for the external detection model in the
// demo binary and in integration tests.
type Script struct {
	mu      sync.Mutex
	frames  []pose.Frame
	cursor  int
	loop    bool
	latency time.Duration
}

// ScriptOption applies a configuration option to the Script.
type ScriptOption func(*Script)

// WithLoop makes the script wrap around instead of holding its last frame.
func WithLoop(loop bool) ScriptOption {
	return func(s *Script) {
		s.loop = loop
	}
}

// WithLatency makes each detect call take at least d, to model inference
// time. The call still honors context cancellation while waiting.
func WithLatency(d time.Duration) ScriptOption {
	return func(s *Script) {
		if d > 0 {
			s.latency = d
		}
	}
}

// NewScript creates a script detector over the given frames.
func NewScript(frames []pose.Frame, opts ...ScriptOption) (*Script, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyScript
	}
	s := &Script{frames: frames}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Detect returns the next scripted frame, re-stamped with the requested
// timestamp so downstream consumers see the video clock, not the one the
// script was recorded with.
func (s *Script) Detect(ctx context.Context, _, _ int, ts time.Duration) (pose.Frame, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return pose.Frame{}, fmt.Errorf("detect canceled: %w", ctx.Err())
		case <-time.After(s.latency):
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.frames[s.cursor]
	if s.cursor < len(s.frames)-1 {
		s.cursor++
	} else if s.loop {
		s.cursor = 0
	}
	return pose.NewFrame(ts, f.Subjects()...), nil
}

// Remaining returns how many scripted frames have not been served yet.
// A looping script always reports its full length.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loop {
		return len(s.frames)
	}
	return len(s.frames) - s.cursor
}

// Script file shapes, mirroring the JSON a pose recorder writes.
type scriptLandmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

type scriptSubject struct {
	Schema string           `json:"schema"`
	Points []scriptLandmark `json:"points"`
}

type scriptFrame struct {
	Subjects []scriptSubject `json:"subjects"`
}

type scriptFile struct {
	Frames []scriptFrame `json:"frames"`
}

// LoadScript reads a recorded pose script from a JSON file. Subjects are
// schema-validated on load, so a malformed recording fails here rather
// than mid-pipeline.
func LoadScript(path string) ([]pose.Frame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var sf scriptFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	frames := make([]pose.Frame, 0, len(sf.Frames))
	for i, fr := range sf.Frames {
		subjects := make([]pose.Subject, 0, len(fr.Subjects))
		for j, sub := range fr.Subjects {
			schema, err := pose.ParseSchema(sub.Schema)
			if err != nil {
				return nil, fmt.Errorf("frame %d subject %d: %w", i, j, err)
			}
			points := make([]pose.Landmark, len(sub.Points))
			for k, p := range sub.Points {
				points[k] = pose.Landmark{X: p.X, Y: p.Y, Z: p.Z}
			}
			subject, err := pose.NewSubject(schema, points)
			if err != nil {
				return nil, fmt.Errorf("frame %d subject %d: %w", i, j, err)
			}
			subjects = append(subjects, subject)
		}
		frames = append(frames, pose.NewFrame(0, subjects...))
	}
	if len(frames) == 0 {
		return nil, ErrEmptyScript
	}
	return frames, nil
}
