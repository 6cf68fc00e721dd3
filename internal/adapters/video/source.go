// Package video defines the narrow surface the pipeline needs from a
// video frame source. Acquisition mechanics (capture devices, decoding)
// live behind this interface and outside this repository.
package video

import "time"

// Source exposes the current presentation state of a video surface.
type Source interface {
	// Timestamp returns the current presentation timestamp. It is
	// monotonically non-decreasing while playing and unchanged while
	// paused.
	Timestamp() time.Duration

	// Dimensions returns the surface's pixel width and height. Zero
	// dimensions mean the surface is not yet ready.
	Dimensions() (width, height int)

	// Ready reports whether the surface can be sampled: non-zero
	// dimensions, not paused, not ended.
	Ready() bool
}
