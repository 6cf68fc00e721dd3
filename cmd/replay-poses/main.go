// Command replay-poses writes a synthetic pose script and optionally runs
// the measurement pipeline over it, printing what each frame yields. Useful
// for sanity-checking calibration constants before pointing the pipeline at
// a real recording.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/wingspan/internal/adapters/detector"
	"github.com/okian/wingspan/internal/domain/calibration"
	"github.com/okian/wingspan/internal/domain/geometry"
	"github.com/okian/wingspan/internal/domain/pose"
	"github.com/okian/wingspan/internal/synthetic"
	"github.com/okian/wingspan/pkg/logger"
)

// Default generation constants.
const (
	defaultFrames      = 90
	defaultFOVDegrees  = 70.0
	defaultDistanceCM  = 160.0
	defaultShoulderCM  = 45.0
	defaultWingspanCM  = 175.0
	defaultWidth       = 1280
	defaultHeight      = 720
	defaultFrameMS     = 33
	scriptFilePermCode = 0o600
)

func main() {
	var (
		frames     = flag.Int("frames", defaultFrames, "Number of frames to generate")
		fovDegrees = flag.Float64("fov", defaultFOVDegrees, "Horizontal field of view in degrees")
		distance   = flag.Float64("distance", defaultDistanceCM, "Subject distance from camera in cm")
		shoulder   = flag.Float64("shoulder", defaultShoulderCM, "Shoulder width in cm")
		wingspan   = flag.Float64("wingspan", defaultWingspanCM, "Wingspan in cm")
		width      = flag.Int("width", defaultWidth, "Frame width in pixels")
		height     = flag.Int("height", defaultHeight, "Frame height in pixels")
		outputFile = flag.String("output", "", "Write the script as JSON to this path instead of measuring")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	ctx := context.Background()
	lg := logger.Get().Named("replay")

	fov := calibration.Degrees(*fovDegrees)
	frame, err := synthetic.BodyFrame(synthetic.BodySpec{
		DistanceCM:      *distance,
		ShoulderWidthCM: *shoulder,
		WingspanCM:      *wingspan,
	}, fov, *width, *height, 0)
	if err != nil {
		lg.Error(ctx, "failed to generate subject", logger.Error(err))
		return
	}
	script := synthetic.Repeat(frame, *frames, defaultFrameMS*time.Millisecond)

	if *outputFile != "" {
		if err := writeScript(*outputFile, script); err != nil {
			lg.Error(ctx, "failed to write script", logger.Error(err))
			return
		}
		lg.Info(ctx, "script written",
			logger.String("path", *outputFile),
			logger.Int("frames", len(script)),
		)
		return
	}

	cal, err := calibration.NewKnownReference(fov, *shoulder,
		calibration.Pair{A: pose.LeftShoulder, B: pose.RightShoulder},
		calibration.Pair{A: pose.LeftWrist, B: pose.RightWrist},
	)
	if err != nil {
		lg.Error(ctx, "failed to build calibration model", logger.Error(err))
		return
	}

	det, err := detector.NewScript(script)
	if err != nil {
		lg.Error(ctx, "failed to build detector", logger.Error(err))
		return
	}

	for i := 0; i < len(script); i++ {
		f, err := det.Detect(ctx, *width, *height, script[i].Timestamp())
		if err != nil {
			lg.Error(ctx, "detect failed", logger.Error(err))
			return
		}
		m := geometry.Measure(f, cal, float64(*width), float64(*height))
		if !m.Span.Available {
			fmt.Printf("frame %3d: unavailable (%d subjects)\n", i, m.Subjects)
			continue
		}
		fmt.Printf("frame %3d: distance %.1fcm span %.1fcm\n", i, m.Distance.CM, m.Span.CM)
	}
}

// scriptLandmark and friends mirror the detector package's script format.
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

func writeScript(path string, frames []pose.Frame) error {
	out := scriptFile{Frames: make([]scriptFrame, 0, len(frames))}
	for _, f := range frames {
		sf := scriptFrame{}
		for _, subject := range f.Subjects() {
			ss := scriptSubject{Schema: subject.Schema().String()}
			for p := 0; p < subject.Schema().Size(); p++ {
				l, err := subject.At(pose.Point(p))
				if err != nil {
					return err
				}
				ss.Points = append(ss.Points, scriptLandmark{X: l.X, Y: l.Y, Z: l.Z})
			}
			sf.Subjects = append(sf.Subjects, ss)
		}
		out.Frames = append(out.Frames, sf)
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	if err := os.WriteFile(path, raw, scriptFilePermCode); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}
