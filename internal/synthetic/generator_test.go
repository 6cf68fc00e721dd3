package synthetic_test

import (
	"testing"
	"time"

	calibration "github.com/okian/wingspan/internal/domain/calibration"
	geometry "github.com/okian/wingspan/internal/domain/geometry"
	pose "github.com/okian/wingspan/internal/domain/pose"
	synthetic "github.com/okian/wingspan/internal/synthetic"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBodySubject(t *testing.T) {
	fov := calibration.Degrees(70)

	Convey("Given a body spec", t, func() {
		spec := synthetic.BodySpec{
			DistanceCM:      160,
			ShoulderWidthCM: 45,
			WingspanCM:      175,
		}

		Convey("When projected and measured back", func() {
			frame, err := synthetic.BodyFrame(spec, fov, 1280, 720, 0)
			So(err, ShouldBeNil)

			cal, err := calibration.NewKnownReference(fov, spec.ShoulderWidthCM,
				calibration.Pair{A: pose.LeftShoulder, B: pose.RightShoulder},
				calibration.Pair{A: pose.LeftWrist, B: pose.RightWrist},
			)
			So(err, ShouldBeNil)

			m := geometry.Measure(frame, cal, 1280, 720)

			Convey("Then the pipeline recovers the real geometry", func() {
				So(m.Distance.Available, ShouldBeTrue)
				So(m.Distance.CM, ShouldAlmostEqual, 160.0, 1e-6)
				So(m.Span.CM, ShouldAlmostEqual, 175.0, 1e-6)
			})
		})

		Convey("When the spec has non-positive values", func() {
			for _, bad := range []synthetic.BodySpec{
				{DistanceCM: 0, ShoulderWidthCM: 45, WingspanCM: 175},
				{DistanceCM: 160, ShoulderWidthCM: -1, WingspanCM: 175},
				{DistanceCM: 160, ShoulderWidthCM: 45, WingspanCM: 0},
			} {
				_, err := synthetic.BodySubject(bad, fov, 1280, 720)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("When the subject is too close to fit the frame", func() {
			near := synthetic.BodySpec{DistanceCM: 10, ShoulderWidthCM: 45, WingspanCM: 175}
			_, err := synthetic.BodySubject(near, fov, 1280, 720)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestHandPairFrame(t *testing.T) {
	fov := calibration.Degrees(70)

	Convey("Given a hand pair at a fixed distance", t, func() {
		Convey("When projected and measured back", func() {
			frame, err := synthetic.HandPairFrame(105, 150, fov, 1280, 720, 0)
			So(err, ShouldBeNil)
			So(frame.SubjectCount(), ShouldEqual, 2)

			cal, err := calibration.NewFixedDistance(fov, 150, pose.HandMiddleTip)
			So(err, ShouldBeNil)

			m := geometry.Measure(frame, cal, 1280, 720)
			So(m.Span.Available, ShouldBeTrue)
			So(m.Span.CM, ShouldAlmostEqual, 105.0, 1e-6)
		})

		Convey("When the separation does not fit the frame", func() {
			_, err := synthetic.HandPairFrame(500, 150, fov, 1280, 720, 0)
			So(err, ShouldNotBeNil)
		})

		Convey("When the distance is not positive", func() {
			_, err := synthetic.HandPairFrame(105, 0, fov, 1280, 720, 0)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRepeat(t *testing.T) {
	Convey("Given a frame to script", t, func() {
		frame, err := synthetic.HandPairFrame(50, 150, calibration.Degrees(70), 1280, 720, 0)
		So(err, ShouldBeNil)

		script := synthetic.Repeat(frame, 3, 33*time.Millisecond)

		Convey("Then timestamps step monotonically", func() {
			So(len(script), ShouldEqual, 3)
			So(script[0].Timestamp(), ShouldEqual, time.Duration(0))
			So(script[1].Timestamp(), ShouldEqual, 33*time.Millisecond)
			So(script[2].Timestamp(), ShouldEqual, 66*time.Millisecond)
		})

		Convey("And every copy keeps the subjects", func() {
			for _, f := range script {
				So(f.SubjectCount(), ShouldEqual, 2)
			}
		})
	})
}
