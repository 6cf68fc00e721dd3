package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/wingspan/internal/adapters/detector"
	"github.com/okian/wingspan/internal/adapters/http/api"
	"github.com/okian/wingspan/internal/adapters/video"
	app "github.com/okian/wingspan/internal/app"
	"github.com/okian/wingspan/internal/config"
	"github.com/okian/wingspan/internal/domain/calibration"
	"github.com/okian/wingspan/internal/domain/pose"
	"github.com/okian/wingspan/internal/synthetic"
	"github.com/okian/wingspan/pkg/logger"
	"github.com/okian/wingspan/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Demo subject constants, used when no recorded script is supplied.
const (
	demoSubjectDistanceCM = 160.0
	demoWingspanCM        = 175.0
	demoHandSeparationCM  = 105.0
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since log level isn't applied yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	cal, err := buildCalibration(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build calibration model: " + err.Error() + "\n")
		return
	}

	source := video.NewSimSource(
		video.WithSimDimensions(cfg.VideoWidth, cfg.VideoHeight),
		video.WithSimFPS(cfg.VideoFPS),
	)

	det, err := buildDetector(cfg, cal)
	if err != nil {
		os.Stderr.WriteString("failed to build detector: " + err.Error() + "\n")
		return
	}

	// Create and start the pipeline with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithVideoSource(source),
		app.WithDetector(det),
		app.WithCalibration(cal),
		app.WithRefreshRate(cfg.RefreshHz),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start pipeline: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildCalibration maps config onto the tagged calibration variant.
func buildCalibration(cfg *config.Config) (*calibration.Model, error) {
	fov := calibration.Degrees(cfg.FOVDegrees)
	if cfg.Mode == "fixed_distance" {
		return calibration.NewFixedDistance(fov, cfg.FixedDistanceCM, pose.HandMiddleTip)
	}
	return calibration.NewKnownReference(fov, cfg.ReferenceLengthCM,
		calibration.Pair{A: pose.LeftShoulder, B: pose.RightShoulder},
		calibration.Pair{A: pose.LeftWrist, B: pose.RightWrist},
	)
}

// buildDetector loads a recorded script when configured, otherwise
// generates a synthetic subject matching the calibration mode.
func buildDetector(cfg *config.Config, cal *calibration.Model) (detector.Detector, error) {
	opts := []detector.ScriptOption{detector.WithLoop(true)}
	if cfg.DetectLatencyMS > 0 {
		opts = append(opts, detector.WithLatency(time.Duration(cfg.DetectLatencyMS)*time.Millisecond))
	}

	if cfg.ScriptPath != "" {
		frames, err := detector.LoadScript(cfg.ScriptPath)
		if err != nil {
			return nil, err
		}
		return detector.NewScript(frames, opts...)
	}

	if cal.Mode() == calibration.ModeFixedDistance {
		frame, err := synthetic.HandPairFrame(demoHandSeparationCM, cfg.FixedDistanceCM,
			cal.FOV(), cfg.VideoWidth, cfg.VideoHeight, 0)
		if err != nil {
			return nil, err
		}
		return detector.NewScript(synthetic.Repeat(frame, 1, 0), opts...)
	}

	frame, err := synthetic.BodyFrame(synthetic.BodySpec{
		DistanceCM:      demoSubjectDistanceCM,
		ShoulderWidthCM: cfg.ReferenceLengthCM,
		WingspanCM:      demoWingspanCM,
	}, cal.FOV(), cfg.VideoWidth, cfg.VideoHeight, 0)
	if err != nil {
		return nil, err
	}
	return detector.NewScript(synthetic.Repeat(frame, 1, 0), opts...)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval) // Update every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Average pause across all cycles so far
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
