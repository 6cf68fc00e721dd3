// Package detector defines the landmark-detection contract and a script
// detector that replays recorded or synthetic pose frames.
//
// The real detection model is an external collaborator. The pipeline only
// consumes this narrow surface: one synchronous detect call per distinct
// timestamp, returning an immutable landmark frame. Detector configuration
// (confidence thresholds, subject-count limits) is opaque to the core.
package detector

import (
	"context"
	"time"

	"github.com/okian/wingspan/internal/domain/pose"
)

// Detector produces a landmark frame for the current video frame. Detect
// is side-effect-free with respect to pipeline state and is called at most
// once per distinct timestamp.
type Detector interface {
	Detect(ctx context.Context, width, height int, ts time.Duration) (pose.Frame, error)
}

// Starter is implemented by detectors that need explicit initialization,
// e.g. model loading. A Start failure is terminal for the pipeline; the
// core does not retry it.
type Starter interface {
	Start(ctx context.Context) error
}
