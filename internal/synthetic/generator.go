// Package synthetic generates pose frames by projecting subjects of known
// real geometry through the same pinhole model the pipeline inverts. Used
// by the replay tool and by round-trip tests.
package synthetic

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/wingspan/internal/domain/pose"
)

// Landmark placement constants. Generated subjects stand centered with
// measured pairs on the horizontal midline.
const (
	centerX = 0.5
	centerY = 0.5
)

// BodySpec describes a generated full-body subject.
type BodySpec struct {
	// DistanceCM is the camera-to-subject distance.
	DistanceCM float64
	// ShoulderWidthCM is the real shoulder separation.
	ShoulderWidthCM float64
	// WingspanCM is the real wrist-to-wrist separation.
	WingspanCM float64
}

// BodySubject projects a body of known geometry onto a frame of the given
// pixel dimensions, assuming the given horizontal field of view. Shoulders
// and wrists land symmetric about the frame center on the midline; all
// other landmarks sit at the center.
func BodySubject(spec BodySpec, fovRadians float64, width, height int) (pose.Subject, error) {
	if spec.DistanceCM <= 0 || spec.ShoulderWidthCM <= 0 || spec.WingspanCM <= 0 {
		return pose.Subject{}, fmt.Errorf("body spec values must be positive: %+v", spec)
	}
	focal := float64(width) / (2 * math.Tan(fovRadians/2))

	shoulderFrac := spec.ShoulderWidthCM * focal / spec.DistanceCM / float64(width)
	wingspanFrac := spec.WingspanCM * focal / spec.DistanceCM / float64(width)
	if wingspanFrac > 1 || shoulderFrac > 1 {
		return pose.Subject{}, fmt.Errorf("subject at %.0fcm does not fit the frame", spec.DistanceCM)
	}

	points := make([]pose.Landmark, pose.SchemaBody.Size())
	for i := range points {
		points[i] = pose.Landmark{X: centerX, Y: centerY}
	}
	points[pose.LeftShoulder] = pose.Landmark{X: centerX - shoulderFrac/2, Y: centerY}
	points[pose.RightShoulder] = pose.Landmark{X: centerX + shoulderFrac/2, Y: centerY}
	points[pose.LeftWrist] = pose.Landmark{X: centerX - wingspanFrac/2, Y: centerY}
	points[pose.RightWrist] = pose.Landmark{X: centerX + wingspanFrac/2, Y: centerY}

	return pose.NewSubject(pose.SchemaBody, points)
}

// BodyFrame wraps a generated body subject in a single-subject frame.
func BodyFrame(spec BodySpec, fovRadians float64, width, height int, ts time.Duration) (pose.Frame, error) {
	subject, err := BodySubject(spec, fovRadians, width, height)
	if err != nil {
		return pose.Frame{}, err
	}
	return pose.NewFrame(ts, subject), nil
}

// HandPairFrame projects two hands whose middle fingertips sit the given
// real separation apart at the assumed fixed distance. Both hands land on
// the midline, symmetric about the frame center.
func HandPairFrame(separationCM, distanceCM, fovRadians float64, width, height int, ts time.Duration) (pose.Frame, error) {
	if separationCM < 0 || distanceCM <= 0 {
		return pose.Frame{}, fmt.Errorf("hand pair wants non-negative separation and positive distance, got %vcm at %vcm", separationCM, distanceCM)
	}
	ratio := 2 * distanceCM * math.Tan(fovRadians/2) / float64(width) // cm per pixel
	frac := separationCM / ratio / float64(width)
	if frac > 1 {
		return pose.Frame{}, fmt.Errorf("hands %vcm apart do not fit the frame", separationCM)
	}

	left, err := handAt(centerX-frac/2, centerY)
	if err != nil {
		return pose.Frame{}, err
	}
	right, err := handAt(centerX+frac/2, centerY)
	if err != nil {
		return pose.Frame{}, err
	}
	return pose.NewFrame(ts, left, right), nil
}

// handAt builds a hand subject with every landmark collapsed onto the
// fingertip position. Only the middle fingertip matters for measurement.
func handAt(x, y float64) (pose.Subject, error) {
	points := make([]pose.Landmark, pose.SchemaHand.Size())
	for i := range points {
		points[i] = pose.Landmark{X: x, Y: y}
	}
	return pose.NewSubject(pose.SchemaHand, points)
}

// Repeat builds a script of n copies of the same frame, stepping the
// timestamp by interval each time. Replaying it exercises the frame gate
// with a realistic monotonic clock.
func Repeat(frame pose.Frame, n int, interval time.Duration) []pose.Frame {
	frames := make([]pose.Frame, n)
	for i := range frames {
		frames[i] = pose.NewFrame(time.Duration(i)*interval, frame.Subjects()...)
	}
	return frames
}
