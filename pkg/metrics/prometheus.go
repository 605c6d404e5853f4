// Package metrics provides Prometheus metrics for the pitchlog widget.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the widget.
type Manager struct {
	namespace        string
	subsystem        string
	serializeBuckets []float64
	httpBuckets      []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Capture metrics
	clicks      *prometheus.CounterVec
	modeChanges prometheus.Counter

	// Event list metrics
	commits        *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	deletions      prometheus.Counter
	recordedEvents prometheus.Gauge

	// Synchronization metrics
	renders           *prometheus.CounterVec
	hiddenFieldBytes  prometheus.Gauge
	serializeDuration prometheus.Histogram

	// Monitoring endpoint metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure replaces the global manager and its registry with one built from
// opts. Call it at startup, before anything records or GetRegistry is read.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchlog",
		subsystem:        "widget",
		serializeBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		httpBuckets:      []float64{0.5, 1, 5, 10, 50, 250},
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := m.constLabels

	m.clicks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pitch_clicks_total",
		Help:        "Total number of pitch clicks by capture mode",
		ConstLabels: labels,
	}, []string{"mode"})

	m.modeChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mode_changes_total",
		Help:        "Total number of play-type changes (each clears pending clicks)",
		ConstLabels: labels,
	})

	m.commits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "commits_total",
		Help:        "Total number of events committed by play type",
		ConstLabels: labels,
	}, []string{"play_type"})

	m.rejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "commit_rejections_total",
		Help:        "Total number of rejected commit attempts by validation reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.deletions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "deletions_total",
		Help:        "Total number of events deleted from the list",
		ConstLabels: labels,
	})

	m.recordedEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recorded_events",
		Help:        "Current number of events in the list",
		ConstLabels: labels,
	})

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "renders_total",
		Help:        "Total number of full re-renders by target",
		ConstLabels: labels,
	}, []string{"target"})

	m.hiddenFieldBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "hidden_field_bytes",
		Help:        "Size of the serialized hidden field value",
		ConstLabels: labels,
	})

	m.serializeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "serialize_duration_milliseconds",
		Help:        "Time spent serializing the event list into the hidden field",
		Buckets:     m.serializeBuckets,
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of monitoring endpoint requests",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status"})

	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "Monitoring endpoint request duration in milliseconds",
		Buckets:     m.httpBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status"})
}

// RecordClick counts a pitch click in the given capture mode.
func (m *Manager) RecordClick(mode string) {
	if m.enabled {
		m.clicks.WithLabelValues(mode).Inc()
	}
}

// RecordModeChange counts a play-type change.
func (m *Manager) RecordModeChange() {
	if m.enabled {
		m.modeChanges.Inc()
	}
}

// RecordCommit counts a committed event.
func (m *Manager) RecordCommit(playType string) {
	if m.enabled {
		m.commits.WithLabelValues(playType).Inc()
	}
}

// RecordRejection counts a rejected commit attempt.
func (m *Manager) RecordRejection(reason string) {
	if m.enabled {
		m.rejections.WithLabelValues(reason).Inc()
	}
}

// RecordDeletion counts a deleted event.
func (m *Manager) RecordDeletion() {
	if m.enabled {
		m.deletions.Inc()
	}
}

// UpdateRecordedEvents sets the current list length.
func (m *Manager) UpdateRecordedEvents(count int) {
	if m.enabled {
		m.recordedEvents.Set(float64(count))
	}
}

// RecordRender counts a full re-render of target.
func (m *Manager) RecordRender(target string) {
	if m.enabled {
		m.renders.WithLabelValues(target).Inc()
	}
}

// RecordSerialization records the size and duration of a hidden field write.
func (m *Manager) RecordSerialization(bytes int, durationMs float64) {
	if m.enabled {
		m.hiddenFieldBytes.Set(float64(bytes))
		m.serializeDuration.Observe(durationMs)
	}
}

// RecordHTTPRequest counts a monitoring endpoint request.
func (m *Manager) RecordHTTPRequest(endpoint, method, status string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records how long a monitoring endpoint request took.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if m.enabled {
		m.httpDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// RecordClick counts a pitch click on the global manager.
func RecordClick(mode string) { globalManager.RecordClick(mode) }

// RecordModeChange counts a play-type change on the global manager.
func RecordModeChange() { globalManager.RecordModeChange() }

// RecordCommit counts a committed event on the global manager.
func RecordCommit(playType string) { globalManager.RecordCommit(playType) }

// RecordRejection counts a rejected commit on the global manager.
func RecordRejection(reason string) { globalManager.RecordRejection(reason) }

// RecordDeletion counts a deleted event on the global manager.
func RecordDeletion() { globalManager.RecordDeletion() }

// UpdateRecordedEvents sets the list length on the global manager.
func UpdateRecordedEvents(count int) { globalManager.UpdateRecordedEvents(count) }

// RecordRender counts a re-render on the global manager.
func RecordRender(target string) { globalManager.RecordRender(target) }

// RecordSerialization records a hidden field write on the global manager.
func RecordSerialization(bytes int, durationMs float64) {
	globalManager.RecordSerialization(bytes, durationMs)
}

// RecordHTTPRequest counts a request on the global manager.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.RecordHTTPRequest(endpoint, method, status)
}

// RecordHTTPRequestDuration records a request duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, status, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
