package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "github.com/okian/wingspan/internal/adapters/http/api"
	model "github.com/okian/wingspan/internal/domain/model"
	"gonum.org/v1/gonum/spatial/r2"

	. "github.com/smartystreets/goconvey/convey"
)

// fakePipeline implements the handler dependencies with canned values.
type fakePipeline struct {
	m   model.Measurement
	ok  bool
	err error
}

func (f *fakePipeline) Latest(context.Context) (model.Measurement, bool) { return f.m, f.ok }
func (f *fakePipeline) Err() error                                       { return f.err }

func (f *fakePipeline) GetStats() map[string]interface{} {
	return map[string]interface{}{"session": "test", "framesProcessed": 3}
}

func serve(deps *fakePipeline, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMeasurementEndpoint(t *testing.T) {
	Convey("Given the measurement endpoint", t, func() {
		Convey("When no frame has been processed yet", func() {
			rec := serve(&fakePipeline{}, http.MethodGet, "/measurement")

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body["status"], ShouldEqual, "waiting")
			So(body["measurement"], ShouldBeNil)
		})

		Convey("When a measurement is available", func() {
			deps := &fakePipeline{
				ok: true,
				m: model.Measurement{
					Timestamp: 33 * time.Millisecond,
					Subjects:  1,
					Distance:  model.Available(160.7),
					Span:      model.Available(180.0),
					Segments: []model.Segment{{
						Kind: model.SegmentReference,
						A:    r2.Vec{X: 512, Y: 360},
						B:    r2.Vec{X: 768, Y: 360},
					}},
				},
			}
			rec := serve(deps, http.MethodGet, "/measurement")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

			var body struct {
				Status      string `json:"status"`
				Measurement *struct {
					TimestampMS float64 `json:"timestamp_ms"`
					Subjects    int     `json:"subjects"`
					Distance    struct {
						CM        float64 `json:"cm"`
						Available bool    `json:"available"`
					} `json:"distance"`
					Span struct {
						CM        float64 `json:"cm"`
						Available bool    `json:"available"`
					} `json:"span"`
					Segments []struct {
						Kind string     `json:"kind"`
						From [2]float64 `json:"from"`
						To   [2]float64 `json:"to"`
					} `json:"segments"`
				} `json:"measurement"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Status, ShouldEqual, "ok")
			So(body.Measurement, ShouldNotBeNil)
			So(body.Measurement.TimestampMS, ShouldEqual, 33.0)
			So(body.Measurement.Distance.CM, ShouldEqual, 160.7)
			So(body.Measurement.Span.Available, ShouldBeTrue)
			So(len(body.Measurement.Segments), ShouldEqual, 1)
			So(body.Measurement.Segments[0].Kind, ShouldEqual, "reference")
			So(body.Measurement.Segments[0].From[0], ShouldEqual, 512.0)
		})

		Convey("When the measurement is unavailable", func() {
			deps := &fakePipeline{ok: true, m: model.Unavailable(66*time.Millisecond, 0)}
			rec := serve(deps, http.MethodGet, "/measurement")

			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Status      string `json:"status"`
				Measurement *struct {
					Span struct {
						Available bool `json:"available"`
					} `json:"span"`
				} `json:"measurement"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then it is still status ok, with available=false", func() {
				So(body.Status, ShouldEqual, "ok")
				So(body.Measurement, ShouldNotBeNil)
				So(body.Measurement.Span.Available, ShouldBeFalse)
			})
		})

		Convey("When the pipeline failed terminally", func() {
			deps := &fakePipeline{err: errors.New("detector failed to start")}
			rec := serve(deps, http.MethodGet, "/measurement")

			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			var body map[string]any
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body["status"], ShouldEqual, "error")
			So(body["error"], ShouldContainSubstring, "detector")
		})

		Convey("When the method is not GET", func() {
			rec := serve(&fakePipeline{}, http.MethodPost, "/measurement")
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		rec := serve(&fakePipeline{}, http.MethodGet, "/stats")

		So(rec.Code, ShouldEqual, http.StatusOK)
		var body map[string]any
		So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
		So(body["session"], ShouldEqual, "test")
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		rec := serve(&fakePipeline{}, http.MethodGet, "/healthz")

		Convey("Then it serves the metrics registry", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "wingspan")
		})
	})
}
