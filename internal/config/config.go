// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. The field-of-view angle and the
// calibration lengths are the accuracy-limiting assumptions of the whole
// system; everything downstream is only as good as these numbers.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RefreshHz sets the display refresh rate driving the tick loop.
	RefreshHz float64 `koanf:"refresh_hz"`

	// Mode selects the calibration strategy: "known_reference" or
	// "fixed_distance". Exactly one mode is active per deployment.
	Mode string `koanf:"mode"`

	// FOVDegrees is the assumed horizontal camera field of view.
	FOVDegrees float64 `koanf:"fov_degrees"`

	// ReferenceLengthCM is the assumed real shoulder width
	// (known-reference mode).
	ReferenceLengthCM float64 `koanf:"reference_length_cm"`

	// FixedDistanceCM is the assumed camera-to-subject distance
	// (fixed-distance mode).
	FixedDistanceCM float64 `koanf:"fixed_distance_cm"`

	// ScriptPath points to a recorded pose script; empty means the demo
	// generates a synthetic one.
	ScriptPath string `koanf:"script_path"`

	// VideoWidth, VideoHeight, and VideoFPS configure the simulated
	// video surface.
	VideoWidth  int     `koanf:"video_width"`
	VideoHeight int     `koanf:"video_height"`
	VideoFPS    float64 `koanf:"video_fps"`

	// DetectLatencyMS simulates inference latency in the script detector.
	DetectLatencyMS int `koanf:"detect_latency_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		RefreshHz:         60,
		Mode:              "known_reference",
		FOVDegrees:        70,
		ReferenceLengthCM: 45,
		FixedDistanceCM:   150,
		VideoWidth:        1280,
		VideoHeight:       720,
		VideoFPS:          30,
		DetectLatencyMS:   0,
	}
}
