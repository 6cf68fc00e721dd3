// Package types contains common read-model types used across the application
package types

import "github.com/okian/wingspan/internal/domain/model"

// Quantity mirrors a metric quantity for API responses.
type Quantity struct {
	CM        float64 `json:"cm"`
	Available bool    `json:"available"`
}

// Segment mirrors a pixel-space segment for API responses. From and To are
// [x, y] pixel coordinates.
type Segment struct {
	Kind string     `json:"kind"`
	From [2]float64 `json:"from"`
	To   [2]float64 `json:"to"`
}

// Measurement mirrors the latest measurement for API responses.
type Measurement struct {
	TimestampMS float64   `json:"timestamp_ms"`
	Subjects    int       `json:"subjects"`
	Distance    Quantity  `json:"distance"`
	Span        Quantity  `json:"span"`
	Segments    []Segment `json:"segments"`
}

// FromModel converts a domain measurement into its API shape.
func FromModel(m model.Measurement) Measurement {
	out := Measurement{
		TimestampMS: float64(m.Timestamp.Microseconds()) / 1000,
		Subjects:    m.Subjects,
		Distance:    Quantity{CM: m.Distance.CM, Available: m.Distance.Available},
		Span:        Quantity{CM: m.Span.CM, Available: m.Span.Available},
	}
	for _, s := range m.Segments {
		out.Segments = append(out.Segments, Segment{
			Kind: string(s.Kind),
			From: [2]float64{s.A.X, s.A.Y},
			To:   [2]float64{s.B.X, s.B.Y},
		})
	}
	return out
}
