package pose

import "fmt"

// Schema identifies the anatomical layout a detector emits. Landmark
// indices are stable across frames for a given schema, so named points
// below are the only sanctioned way to address them.
type Schema int

// Supported landmark schemas.
const (
	// SchemaBody is the 33-point full-body layout.
	SchemaBody Schema = iota + 1
	// SchemaHand is the 21-point single-hand layout.
	SchemaHand
)

// Landmark counts per schema.
const (
	bodyPointCount = 33
	handPointCount = 21
)

// Point addresses a single landmark within a schema.
type Point int

// Body landmark points (subset relevant to measurement).
const (
	Nose          Point = 0
	LeftShoulder  Point = 11
	RightShoulder Point = 12
	LeftElbow     Point = 13
	RightElbow    Point = 14
	LeftWrist     Point = 15
	RightWrist    Point = 16
	LeftHip       Point = 23
	RightHip      Point = 24
)

// Hand landmark points (subset relevant to measurement).
const (
	HandWrist     Point = 0
	HandThumbTip  Point = 4
	HandIndexTip  Point = 8
	HandMiddleTip Point = 12
	HandRingTip   Point = 16
	HandPinkyTip  Point = 20
)

// Size returns the number of landmarks a subject of this schema carries.
func (s Schema) Size() int {
	switch s {
	case SchemaBody:
		return bodyPointCount
	case SchemaHand:
		return handPointCount
	default:
		return 0
	}
}

// Contains reports whether p addresses a landmark within this schema.
func (s Schema) Contains(p Point) bool {
	return p >= 0 && int(p) < s.Size()
}

// String returns the schema name.
func (s Schema) String() string {
	switch s {
	case SchemaBody:
		return "body"
	case SchemaHand:
		return "hand"
	default:
		return fmt.Sprintf("schema(%d)", int(s))
	}
}

// ParseSchema maps a schema name to its Schema value.
func ParseSchema(name string) (Schema, error) {
	switch name {
	case "body":
		return SchemaBody, nil
	case "hand":
		return SchemaHand, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
}
