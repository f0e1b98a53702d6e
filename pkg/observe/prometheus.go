// Package observe adds optional instrumentation around a frozen
// route.RouteSet. The matching core stays free of telemetry; this
// package wraps it from the outside.
package observe

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "cmdroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolve duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "cmdroute",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors.
type metrics struct {
	resolutionsTotal *prometheus.CounterVec
	resolveDuration  prometheus.Histogram
	rejectionsTotal  *prometheus.CounterVec
	routesRegistered prometheus.Gauge
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		resolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of resolutions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		resolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		rejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_rejections_total",
			Help:        "Total candidate-route rejections by reason category",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		routesRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes_registered",
			Help:        "Number of routes in the instrumented set",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// categorizeReason maps free-form rejection reasons onto a small label
// set. This keeps label cardinality low regardless of pattern content.
func categorizeReason(reason string) string {
	switch {
	case strings.HasPrefix(reason, "missing required option"):
		return "missing_required_option"
	case strings.HasPrefix(reason, "missing argument"):
		return "missing_argument"
	case strings.HasPrefix(reason, "missing literal"),
		strings.HasPrefix(reason, "expected "):
		return "literal_mismatch"
	case strings.Contains(reason, "requires a value"):
		return "option_needs_value"
	case strings.HasPrefix(reason, "unconsumed"):
		return "leftover_tokens"
	default:
		return "other"
	}
}
