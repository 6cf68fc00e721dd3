// Package metrics provides Prometheus metrics for the wingspan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Frame gate metrics
	framesProcessed prometheus.Counter
	framesDuplicate prometheus.Counter
	framesNotReady  prometheus.Counter

	// Detection metrics
	detections     prometheus.Counter
	detectorErrors prometheus.Counter
	detectLatency  prometheus.Histogram

	// Measurement metrics
	measurementsAvailable   prometheus.Counter
	measurementsUnavailable prometheus.Counter
	latestDistanceCM        prometheus.Gauge
	latestSpanCM            prometheus.Gauge
	tickLatency             prometheus.Histogram

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wingspan",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Frame gate metrics - cadence and idempotency health
	m.framesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_processed_total",
		Help:      "Total number of distinct video frames processed",
	})

	m.framesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_duplicate_total",
		Help:      "Total number of repeated-timestamp ticks skipped by the frame gate",
	})

	m.framesNotReady = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_not_ready_total",
		Help:      "Total number of ticks skipped because the video surface was not ready",
	})

	// Detection metrics
	m.detections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "detections_total",
		Help:      "Total number of landmark detection calls",
	})

	m.detectorErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "detector_errors_total",
		Help:      "Total number of failed detection calls",
	})

	m.detectLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "detect_latency_milliseconds",
		Help:      "Histogram of landmark detection latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Measurement metrics
	m.measurementsAvailable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "measurements_available_total",
		Help:      "Total number of frames that yielded a complete measurement",
	})

	m.measurementsUnavailable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "measurements_unavailable_total",
		Help:      "Total number of frames with no measurable configuration (expected state, not an error)",
	})

	m.latestDistanceCM = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latest_distance_cm",
		Help:      "Most recently derived camera-to-subject distance in centimeters",
	})

	m.latestSpanCM = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latest_span_cm",
		Help:      "Most recently derived target length in centimeters",
	})

	m.tickLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tick_latency_milliseconds",
		Help:      "End-to-end pipeline tick latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// HTTP performance metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// System performance metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordFrameProcessed increments the distinct-frame counter.
func RecordFrameProcessed() {
	globalManager.framesProcessed.Inc()
}

// RecordFrameDuplicate increments the duplicate-frame counter.
func RecordFrameDuplicate() {
	globalManager.framesDuplicate.Inc()
}

// RecordFrameNotReady increments the not-ready tick counter.
func RecordFrameNotReady() {
	globalManager.framesNotReady.Inc()
}

// RecordDetection increments the detection counter.
func RecordDetection() {
	globalManager.detections.Inc()
}

// RecordDetectorError increments the detector error counter.
func RecordDetectorError() {
	globalManager.detectorErrors.Inc()
}

// RecordDetectLatency records detection latency in milliseconds.
func RecordDetectLatency(latencyMs float64) {
	globalManager.detectLatency.Observe(latencyMs)
}

// RecordMeasurementAvailable increments the available-measurement counter.
func RecordMeasurementAvailable() {
	globalManager.measurementsAvailable.Inc()
}

// RecordMeasurementUnavailable increments the unavailable-measurement counter.
func RecordMeasurementUnavailable() {
	globalManager.measurementsUnavailable.Inc()
}

// UpdateLatestDistance sets the latest derived distance gauge.
func UpdateLatestDistance(cm float64) {
	globalManager.latestDistanceCM.Set(cm)
}

// UpdateLatestSpan sets the latest derived span gauge.
func UpdateLatestSpan(cm float64) {
	globalManager.latestSpanCM.Set(cm)
}

// RecordTickLatency records end-to-end tick latency in milliseconds.
func RecordTickLatency(latencyMs float64) {
	globalManager.tickLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
