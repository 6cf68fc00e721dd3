// Package model contains domain models passed between layers.
package model

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Quantity is a derived metric value in centimeters, or unavailable.
// Absence of a measurable configuration is an expected state, not an error.
type Quantity struct {
	CM        float64
	Available bool
}

// Available builds a present quantity.
func Available(cm float64) Quantity {
	return Quantity{CM: cm, Available: true}
}

// SegmentKind labels what a pixel-space segment was used for.
type SegmentKind string

// Segment kinds.
const (
	SegmentReference SegmentKind = "reference"
	SegmentTarget    SegmentKind = "target"
)

// Segment is a pixel-space landmark pair a measurement was derived from.
// The presentation layer draws these, so visualization and computation
// never diverge.
type Segment struct {
	Kind SegmentKind
	A    r2.Vec
	B    r2.Vec
}

// Measurement is the complete result for one processed frame. It replaces
// its predecessor atomically: a frame either yields a full new Measurement
// or an explicitly unavailable one, never a partial mix.
type Measurement struct {
	// Timestamp is the presentation timestamp of the source video frame.
	Timestamp time.Duration
	// Subjects is the number of subjects the detector reported.
	Subjects int
	// Distance is the derived camera-to-subject distance.
	Distance Quantity
	// Span is the derived target length (e.g., wingspan).
	Span Quantity
	// Segments holds the pixel-space geometry the values came from; empty
	// when the measurement is unavailable.
	Segments []Segment
}

// Unavailable builds a measurement with every quantity unavailable.
func Unavailable(timestamp time.Duration, subjects int) Measurement {
	return Measurement{Timestamp: timestamp, Subjects: subjects}
}
