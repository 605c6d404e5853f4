// Package metrics provides Prometheus metrics for the pitchlog widget.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// withNamespace sets the metric name prefix, "pitchlog" by default.
func withNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// withSubsystem sets the subsystem of the widget collectors. The monitoring
// endpoint collectors always use "http".
func withSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithSerializeBuckets sets the buckets, in milliseconds, of the hidden field
// encode latency histogram.
func WithSerializeBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.serializeBuckets = buckets
		}
	}
}

// WithHTTPBuckets sets the buckets, in milliseconds, of the monitoring request
// latency histogram.
func WithHTTPBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.httpBuckets = buckets
		}
	}
}

// WithMetricsEnabled turns recording on or off. Collectors are registered either way.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithConstLabel adds a constant label to every collector, e.g. the variant.
func WithConstLabel(name, value string) Option {
	return func(m *Manager) {
		if name != "" {
			m.constLabels[name] = value
		}
	}
}

// WithPrometheusRegistry sets the registerer collectors are added to.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
