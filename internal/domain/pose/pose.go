// Package pose models detector output: normalized landmarks grouped into
// schema-validated subjects, one frame per distinct video timestamp.
//
// Conventions:
// - Coordinates are image fractions in [0,1]; Z shares the X unit scale.
// - Frames and subjects are immutable once constructed.
// - Landmark access goes through named points, never raw indices.
package pose

import (
	"fmt"
	"time"
)

// Landmark is a single detected anatomical keypoint in normalized
// image-fraction coordinates. Z is relative depth on the same unit
// scale as X; detectors that do not estimate depth leave it zero.
type Landmark struct {
	X float64
	Y float64
	Z float64
}

// Subject is one detected person (or hand) with a fixed-length landmark
// sequence. Construction validates the landmark count against the schema,
// so At can only fail on an out-of-schema point.
type Subject struct {
	schema Schema
	points []Landmark
}

// NewSubject builds a Subject, rejecting landmark sequences whose length
// does not match the schema.
func NewSubject(schema Schema, points []Landmark) (Subject, error) {
	if schema.Size() == 0 {
		return Subject{}, fmt.Errorf("%w: %v", ErrUnknownSchema, schema)
	}
	if len(points) != schema.Size() {
		return Subject{}, fmt.Errorf("%w: schema %v wants %d landmarks, got %d",
			ErrLandmarkCount, schema, schema.Size(), len(points))
	}
	// Copy so the caller cannot mutate the subject afterwards.
	owned := make([]Landmark, len(points))
	copy(owned, points)
	return Subject{schema: schema, points: owned}, nil
}

// Schema returns the subject's landmark schema.
func (s Subject) Schema() Schema {
	return s.schema
}

// At returns the landmark for a named point, rejecting points outside
// the subject's schema.
func (s Subject) At(p Point) (Landmark, error) {
	if !s.schema.Contains(p) {
		return Landmark{}, fmt.Errorf("%w: point %d not in schema %v", ErrPointOutOfSchema, int(p), s.schema)
	}
	return s.points[p], nil
}

// Frame is the detector output for one video timestamp: zero or more
// subjects. Owned by the detection call that produced it; never mutated.
type Frame struct {
	subjects  []Subject
	timestamp time.Duration
}

// NewFrame builds a Frame for the given presentation timestamp.
func NewFrame(timestamp time.Duration, subjects ...Subject) Frame {
	owned := make([]Subject, len(subjects))
	copy(owned, subjects)
	return Frame{subjects: owned, timestamp: timestamp}
}

// Subjects returns the detected subjects in detection order.
func (f Frame) Subjects() []Subject {
	out := make([]Subject, len(f.subjects))
	copy(out, f.subjects)
	return out
}

// SubjectCount returns the number of detected subjects.
func (f Frame) SubjectCount() int {
	return len(f.subjects)
}

// Subject returns the i-th subject.
func (f Frame) Subject(i int) (Subject, error) {
	if i < 0 || i >= len(f.subjects) {
		return Subject{}, fmt.Errorf("%w: index %d of %d", ErrNoSuchSubject, i, len(f.subjects))
	}
	return f.subjects[i], nil
}

// Timestamp returns the presentation timestamp of the video frame this
// detection was produced from.
func (f Frame) Timestamp() time.Duration {
	return f.timestamp
}
