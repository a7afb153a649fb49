// Package metrics provides Prometheus metrics for the vitrine portfolio service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the vitrine service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Contact Relay Metrics - What really matters for the mail relay
	contactSent       prometheus.Counter
	contactRejections *prometheus.CounterVec
	mailSendDuration  prometheus.Histogram
	mailSendErrors    prometheus.Counter

	// Gallery Metrics - Occlusion engine throughput
	galleryFrames        prometheus.Counter
	galleryFrameDuration prometheus.Histogram
	streamConnections    prometheus.Gauge

	// Operational Health Metrics
	rateLimitEntries prometheus.Gauge
	rateLimitHits    prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
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
		namespace:        "vitrine",
		subsystem:        "portfolio",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
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

func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Contact Relay Metrics - Focus on the mail pipeline
	m.contactSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contact_sent_total",
		Help:      "Total number of contact submissions forwarded to the mail provider",
	})

	m.contactRejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "contact_rejections_total",
			Help:      "Total number of rejected contact submissions by reason",
		},
		[]string{"reason"},
	)

	m.mailSendDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mail_send_duration_milliseconds",
		Help:      "Histogram of outbound mail provider call duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.mailSendErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mail_send_errors_total",
		Help:      "Total number of failed mail provider calls",
	})

	// Gallery Metrics - Occlusion engine throughput
	m.galleryFrames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gallery_frames_total",
		Help:      "Total number of occlusion frames computed",
	})

	m.galleryFrameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gallery_frame_duration_microseconds",
		Help:      "Histogram of occlusion frame computation time in microseconds",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	m.streamConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gallery_stream_connections",
		Help:      "Current number of open gallery stream connections",
	})

	// Operational Health Metrics
	m.rateLimitEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limit_entries",
		Help:      "Current number of tracked rate limit windows",
	})

	m.rateLimitHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limit_hits_total",
		Help:      "Total number of submissions rejected by the rate limiter",
	})

	// HTTP Performance Metrics - User experience indicators
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
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint and method",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of requests that ended in an error",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Garbage collector pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordContactSent increments the forwarded submissions counter.
func RecordContactSent() {
	globalManager.contactSent.Inc()
}

// RecordContactRejection increments the rejection counter for a reason.
func RecordContactRejection(reason string) {
	globalManager.contactRejections.WithLabelValues(reason).Inc()
}

// RecordMailSendDuration records a provider call duration in milliseconds.
func RecordMailSendDuration(durationMs float64) {
	globalManager.mailSendDuration.Observe(durationMs)
}

// RecordMailSendError increments the mail send error counter.
func RecordMailSendError() {
	globalManager.mailSendErrors.Inc()
}

// RecordGalleryFrame records one computed occlusion frame and its duration in microseconds.
func RecordGalleryFrame(durationUs float64) {
	globalManager.galleryFrames.Inc()
	globalManager.galleryFrameDuration.Observe(durationUs)
}

// IncStreamConnections increments the open stream connection gauge.
func IncStreamConnections() {
	globalManager.streamConnections.Inc()
}

// DecStreamConnections decrements the open stream connection gauge.
func DecStreamConnections() {
	globalManager.streamConnections.Dec()
}

// UpdateRateLimitEntries sets the number of tracked rate limit windows.
func UpdateRateLimitEntries(count int) {
	globalManager.rateLimitEntries.Set(float64(count))
}

// RecordRateLimitHit increments the rate limit rejection counter.
func RecordRateLimitHit() {
	globalManager.rateLimitHits.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint, method, and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a request that ended in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the current heap memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
