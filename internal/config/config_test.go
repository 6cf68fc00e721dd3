package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/okian/wingspan/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := config.New()

		So(cfg.LogLevel, ShouldEqual, "info")
		So(cfg.Addr, ShouldEqual, ":9080")
		So(cfg.RefreshHz, ShouldEqual, 60)
		So(cfg.Mode, ShouldEqual, "known_reference")
		So(cfg.FOVDegrees, ShouldEqual, 70)
		So(cfg.ReferenceLengthCM, ShouldEqual, 45)
		So(cfg.FixedDistanceCM, ShouldEqual, 150)
		So(cfg.VideoWidth, ShouldEqual, 1280)
		So(cfg.VideoHeight, ShouldEqual, 720)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given the environment", t, func() {
		Convey("When nothing is set", func() {
			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Mode, ShouldEqual, "known_reference")
			So(cfg.FOVDegrees, ShouldEqual, 70)
		})

		Convey("When env vars override defaults", func() {
			t.Setenv("WINGSPAN_MODE", "fixed_distance")
			t.Setenv("WINGSPAN_FOV_DEGREES", "60")
			t.Setenv("WINGSPAN_FIXED_DISTANCE_CM", "120")
			t.Setenv("WINGSPAN_ADDR", ":8088")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Mode, ShouldEqual, "fixed_distance")
			So(cfg.FOVDegrees, ShouldEqual, 60)
			So(cfg.FixedDistanceCM, ShouldEqual, 120)
			So(cfg.Addr, ShouldEqual, ":8088")

			Convey("Then untouched fields keep their defaults", func() {
				So(cfg.ReferenceLengthCM, ShouldEqual, 45)
				So(cfg.RefreshHz, ShouldEqual, 60)
			})
		})

		Convey("When a YAML file is layered under env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			body := "mode: fixed_distance\nfov_degrees: 55\nvideo_width: 1920\n"
			So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)

			t.Setenv("WINGSPAN_CONFIG", path)
			t.Setenv("WINGSPAN_FOV_DEGREES", "65")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then env wins over file, file wins over defaults", func() {
				So(cfg.FOVDegrees, ShouldEqual, 65)
				So(cfg.Mode, ShouldEqual, "fixed_distance")
				So(cfg.VideoWidth, ShouldEqual, 1920)
			})
		})

		Convey("When the config file is missing", func() {
			t.Setenv("WINGSPAN_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
			_, err := config.Load(ctx)
			So(err, ShouldWrap, config.ErrLoadConfig)
		})

		Convey("When values fail validation", func() {
			t.Setenv("WINGSPAN_CONFIG", "")
			cases := map[string]string{
				"WINGSPAN_MODE":                "stereo",
				"WINGSPAN_FOV_DEGREES":         "181",
				"WINGSPAN_REFERENCE_LENGTH_CM": "-4",
				"WINGSPAN_REFRESH_HZ":          "0",
				"WINGSPAN_VIDEO_WIDTH":         "-1280",
			}
			for key, val := range cases {
				t.Setenv(key, val)
				_, err := config.Load(ctx)
				So(err, ShouldWrap, config.ErrInvalidConfig)
				os.Unsetenv(key)
			}
		})
	})
}
