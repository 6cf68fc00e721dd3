// Package geometry converts landmark frames into metric measurements via
// the pinhole projection model. Measure is a pure function: no state, no
// side effects, and it never returns NaN or Inf to a caller. Degenerate
// inputs collapse to an unavailable measurement instead.
package geometry

import (
	"math"

	"github.com/okian/wingspan/internal/domain/calibration"
	"github.com/okian/wingspan/internal/domain/model"
	"github.com/okian/wingspan/internal/domain/pose"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// PixelVec scales a landmark's fractional coordinates into pixel space.
func PixelVec(l pose.Landmark, width, height float64) r2.Vec {
	return r2.Vec{X: l.X * width, Y: l.Y * height}
}

// PixelSeparation returns the Euclidean pixel distance between two
// landmarks of the same subject.
func PixelSeparation(a, b pose.Landmark, width, height float64) float64 {
	return r2.Norm(r2.Sub(PixelVec(a, width, height), PixelVec(b, width, height)))
}

// PixelSeparation3D is the depth-aware variant: Z is reported in the same
// normalized unit as X, so it scales by frame width.
func PixelSeparation3D(a, b pose.Landmark, width, height float64) float64 {
	av := r3.Vec{X: a.X * width, Y: a.Y * height, Z: a.Z * width}
	bv := r3.Vec{X: b.X * width, Y: b.Y * height, Z: b.Z * width}
	return r3.Norm(r3.Sub(av, bv))
}

// Measure derives a Measurement from one landmark frame. Wrong subject
// counts, coinciding reference landmarks, and any non-finite intermediate
// all yield an unavailable measurement, never an error.
func Measure(frame pose.Frame, m *calibration.Model, width, height float64) model.Measurement {
	if width <= 0 || height <= 0 {
		return model.Unavailable(frame.Timestamp(), frame.SubjectCount())
	}
	if frame.SubjectCount() != m.RequiredSubjects() {
		return model.Unavailable(frame.Timestamp(), frame.SubjectCount())
	}

	switch m.Mode() {
	case calibration.ModeKnownReference:
		return measureKnownReference(frame, m, width, height)
	case calibration.ModeFixedDistance:
		return measureFixedDistance(frame, m, width, height)
	default:
		return model.Unavailable(frame.Timestamp(), frame.SubjectCount())
	}
}

// measureKnownReference applies triangle similarity twice: the reference
// pair's known length recovers the subject distance, and that distance
// recovers the target pair's unknown length from the same frame.
func measureKnownReference(frame pose.Frame, m *calibration.Model, width, height float64) model.Measurement {
	out := model.Unavailable(frame.Timestamp(), frame.SubjectCount())

	subject, err := frame.Subject(0)
	if err != nil || subject.Schema() != m.Schema() {
		return out
	}
	refA, refB, ok := pairLandmarks(subject, m.RefPair())
	if !ok {
		return out
	}
	tgtA, tgtB, ok := pairLandmarks(subject, m.TargetPair())
	if !ok {
		return out
	}

	pRef := PixelSeparation(refA, refB, width, height)
	if pRef <= 0 {
		// Coinciding reference landmarks: a degenerate divisor, not an error.
		return out
	}

	f := m.FocalPx(width)
	distance := m.RefLength() * f / pRef
	pTarget := PixelSeparation(tgtA, tgtB, width, height)
	span := pTarget * distance / f

	if !finite(distance) || !finite(span) {
		return out
	}

	out.Distance = model.Available(distance)
	out.Span = model.Available(span)
	out.Segments = []model.Segment{
		{Kind: model.SegmentReference, A: PixelVec(refA, width, height), B: PixelVec(refB, width, height)},
		{Kind: model.SegmentTarget, A: PixelVec(tgtA, width, height), B: PixelVec(tgtB, width, height)},
	}
	return out
}

// measureFixedDistance assumes the camera distance and measures between the
// same named point on two subjects, e.g. one fingertip per hand. A zero
// pixel separation is a valid zero-length result here, not a degenerate one.
func measureFixedDistance(frame pose.Frame, m *calibration.Model, width, height float64) model.Measurement {
	out := model.Unavailable(frame.Timestamp(), frame.SubjectCount())

	first, err := frame.Subject(0)
	if err != nil || first.Schema() != m.Schema() {
		return out
	}
	second, err := frame.Subject(1)
	if err != nil || second.Schema() != m.Schema() {
		return out
	}
	a, err := first.At(m.SubjectPoint())
	if err != nil {
		return out
	}
	b, err := second.At(m.SubjectPoint())
	if err != nil {
		return out
	}

	span := PixelSeparation(a, b, width, height) * m.PixelRatio(width)
	if !finite(span) {
		return out
	}

	out.Span = model.Available(span)
	out.Segments = []model.Segment{
		{Kind: model.SegmentTarget, A: PixelVec(a, width, height), B: PixelVec(b, width, height)},
	}
	return out
}

func pairLandmarks(s pose.Subject, p calibration.Pair) (pose.Landmark, pose.Landmark, bool) {
	a, err := s.At(p.A)
	if err != nil {
		return pose.Landmark{}, pose.Landmark{}, false
	}
	b, err := s.At(p.B)
	if err != nil {
		return pose.Landmark{}, pose.Landmark{}, false
	}
	return a, b, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
