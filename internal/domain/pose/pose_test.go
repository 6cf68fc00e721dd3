package pose_test

import (
	"testing"

	pose "github.com/okian/wingspan/internal/domain/pose"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	Convey("Given the landmark schemas", t, func() {
		Convey("When asking for sizes", func() {
			So(pose.SchemaBody.Size(), ShouldEqual, 33)
			So(pose.SchemaHand.Size(), ShouldEqual, 21)
			So(pose.Schema(0).Size(), ShouldEqual, 0)
		})

		Convey("When checking point membership", func() {
			So(pose.SchemaBody.Contains(pose.LeftShoulder), ShouldBeTrue)
			So(pose.SchemaBody.Contains(pose.RightWrist), ShouldBeTrue)
			So(pose.SchemaBody.Contains(pose.Point(33)), ShouldBeFalse)
			So(pose.SchemaHand.Contains(pose.HandMiddleTip), ShouldBeTrue)
			So(pose.SchemaHand.Contains(pose.Point(21)), ShouldBeFalse)
			So(pose.SchemaHand.Contains(pose.Point(-1)), ShouldBeFalse)
		})

		Convey("When parsing schema names", func() {
			body, err := pose.ParseSchema("body")
			So(err, ShouldBeNil)
			So(body, ShouldEqual, pose.SchemaBody)

			hand, err := pose.ParseSchema("hand")
			So(err, ShouldBeNil)
			So(hand, ShouldEqual, pose.SchemaHand)

			_, err = pose.ParseSchema("face")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSubject(t *testing.T) {
	Convey("Given landmark sequences", t, func() {
		full := make([]pose.Landmark, pose.SchemaBody.Size())
		for i := range full {
			full[i] = pose.Landmark{X: 0.5, Y: 0.5}
		}
		full[pose.LeftShoulder] = pose.Landmark{X: 0.4, Y: 0.5}

		Convey("When the count matches the schema", func() {
			subject, err := pose.NewSubject(pose.SchemaBody, full)
			So(err, ShouldBeNil)
			So(subject.Schema(), ShouldEqual, pose.SchemaBody)

			Convey("Then named points resolve", func() {
				l, err := subject.At(pose.LeftShoulder)
				So(err, ShouldBeNil)
				So(l.X, ShouldEqual, 0.4)
			})

			Convey("And out-of-schema points are rejected", func() {
				_, err := subject.At(pose.Point(40))
				So(err, ShouldNotBeNil)
			})

			Convey("And mutating the input slice does not leak in", func() {
				full[pose.LeftShoulder] = pose.Landmark{X: 0.99, Y: 0.99}
				l, err := subject.At(pose.LeftShoulder)
				So(err, ShouldBeNil)
				So(l.X, ShouldEqual, 0.4)
			})
		})

		Convey("When the count does not match the schema", func() {
			_, err := pose.NewSubject(pose.SchemaBody, full[:10])
			So(err, ShouldNotBeNil)
		})

		Convey("When the schema is unknown", func() {
			_, err := pose.NewSubject(pose.Schema(9), full)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFrame(t *testing.T) {
	Convey("Given a frame with one subject", t, func() {
		points := make([]pose.Landmark, pose.SchemaHand.Size())
		subject, err := pose.NewSubject(pose.SchemaHand, points)
		So(err, ShouldBeNil)

		frame := pose.NewFrame(500, subject)

		Convey("Then counts and timestamps are reported", func() {
			So(frame.SubjectCount(), ShouldEqual, 1)
			So(frame.Timestamp(), ShouldEqual, 500)
		})

		Convey("Then subjects are addressable by index", func() {
			got, err := frame.Subject(0)
			So(err, ShouldBeNil)
			So(got.Schema(), ShouldEqual, pose.SchemaHand)

			_, err = frame.Subject(1)
			So(err, ShouldNotBeNil)
			_, err = frame.Subject(-1)
			So(err, ShouldNotBeNil)
		})

		Convey("And an empty frame has zero subjects", func() {
			empty := pose.NewFrame(0)
			So(empty.SubjectCount(), ShouldEqual, 0)
		})
	})
}
