// Package calibration defines the monocular pinhole-camera model used to
// turn pixel separations into metric lengths.
//
// Exactly one calibration mode is active per deployment:
//   - KnownReference: a fixed real-world reference length plus the camera's
//     horizontal field of view; subject distance is derived per frame.
//   - FixedDistance: a fixed assumed camera-to-subject distance plus the
//     field of view; a direct pixel-to-centimeter ratio is derived.
//
// The field of view and the reference length are configuration, not derived
// values. They are the accuracy-limiting assumptions of the whole system.
package calibration

import (
	"fmt"
	"math"

	"github.com/okian/wingspan/internal/domain/pose"
)

// Mode tags the calibration strategy a Model carries data for.
type Mode int

// Calibration modes.
const (
	// ModeKnownReference derives subject distance from a known real length,
	// then uses that distance to derive a second unknown length.
	ModeKnownReference Mode = iota + 1
	// ModeFixedDistance assumes a fixed camera-to-subject distance and
	// derives a direct pixel-to-centimeter ratio.
	ModeFixedDistance
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeKnownReference:
		return "known_reference"
	case ModeFixedDistance:
		return "fixed_distance"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "known_reference":
		return ModeKnownReference, nil
	case "fixed_distance":
		return ModeFixedDistance, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Pair names two landmarks whose separation is measured.
type Pair struct {
	A pose.Point
	B pose.Point
}

// Model is a tagged calibration variant. Build it with NewKnownReference or
// NewFixedDistance; the zero value is unusable.
type Model struct {
	mode   Mode
	schema pose.Schema

	// fov is the assumed horizontal field of view in radians.
	fov float64

	// Known-reference mode.
	refLength  float64 // cm
	refPair    Pair
	targetPair Pair

	// Fixed-distance mode.
	fixedDistance float64    // cm
	subjectPoint  pose.Point // measured point, one per subject
}

// NewKnownReference builds a known-reference model: refPair's real length is
// refLengthCM, and targetPair is the unknown length to recover. Requires
// exactly one subject per frame.
func NewKnownReference(fovRadians, refLengthCM float64, refPair, targetPair Pair, opts ...Option) (*Model, error) {
	m := &Model{
		mode:       ModeKnownReference,
		schema:     pose.SchemaBody,
		fov:        fovRadians,
		refLength:  refLengthCM,
		refPair:    refPair,
		targetPair: targetPair,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.validateFOV(); err != nil {
		return nil, err
	}
	if refLengthCM <= 0 {
		return nil, fmt.Errorf("%w: reference length %vcm", ErrInvalidLength, refLengthCM)
	}
	for _, p := range []pose.Point{refPair.A, refPair.B, targetPair.A, targetPair.B} {
		if !m.schema.Contains(p) {
			return nil, fmt.Errorf("%w: point %d not in schema %v", ErrPointOutOfSchema, int(p), m.schema)
		}
	}
	return m, nil
}

// NewFixedDistance builds a fixed-distance model: the camera-to-subject
// distance is assumed to be distanceCM, and the measured length runs between
// subjectPoint on the first subject and subjectPoint on the second. Requires
// exactly two subjects per frame.
func NewFixedDistance(fovRadians, distanceCM float64, subjectPoint pose.Point, opts ...Option) (*Model, error) {
	m := &Model{
		mode:          ModeFixedDistance,
		schema:        pose.SchemaHand,
		fov:           fovRadians,
		fixedDistance: distanceCM,
		subjectPoint:  subjectPoint,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.validateFOV(); err != nil {
		return nil, err
	}
	if distanceCM <= 0 {
		return nil, fmt.Errorf("%w: distance %vcm", ErrInvalidLength, distanceCM)
	}
	if !m.schema.Contains(subjectPoint) {
		return nil, fmt.Errorf("%w: point %d not in schema %v", ErrPointOutOfSchema, int(subjectPoint), m.schema)
	}
	return m, nil
}

func (m *Model) validateFOV() error {
	if m.fov <= 0 || m.fov >= math.Pi {
		return fmt.Errorf("%w: %v radians", ErrInvalidFOV, m.fov)
	}
	return nil
}

// Mode returns the calibration mode tag.
func (m *Model) Mode() Mode {
	return m.mode
}

// Schema returns the landmark schema subjects must carry.
func (m *Model) Schema() pose.Schema {
	return m.schema
}

// FOV returns the assumed horizontal field of view in radians.
func (m *Model) FOV() float64 {
	return m.fov
}

// RequiredSubjects returns the exact subject count a frame must contain
// for this model to produce a measurement.
func (m *Model) RequiredSubjects() int {
	if m.mode == ModeFixedDistance {
		return 2
	}
	return 1
}

// FocalPx returns the focal length in pixel units for a frame of the given
// pixel width: f = W / (2 * tan(FOV/2)).
func (m *Model) FocalPx(width float64) float64 {
	return width / (2 * math.Tan(m.fov/2))
}

// PixelRatio returns the fixed-distance pixel-to-centimeter ratio for a
// frame of the given pixel width: r = 2 * D * tan(FOV/2) / W. Algebraically
// this is D / FocalPx(width).
func (m *Model) PixelRatio(width float64) float64 {
	return 2 * m.fixedDistance * math.Tan(m.fov/2) / width
}

// RefLength returns the known-reference real length in centimeters.
func (m *Model) RefLength() float64 {
	return m.refLength
}

// RefPair returns the landmark pair carrying the known reference length.
func (m *Model) RefPair() Pair {
	return m.refPair
}

// TargetPair returns the landmark pair whose length is recovered.
func (m *Model) TargetPair() Pair {
	return m.targetPair
}

// FixedDistance returns the assumed camera-to-subject distance in
// centimeters.
func (m *Model) FixedDistance() float64 {
	return m.fixedDistance
}

// SubjectPoint returns the per-subject landmark measured in fixed-distance
// mode.
func (m *Model) SubjectPoint() pose.Point {
	return m.subjectPoint
}

// Degrees converts a field of view given in degrees to radians.
func Degrees(deg float64) float64 {
	return deg * math.Pi / 180
}
