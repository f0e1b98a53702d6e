package observe

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

// Default tracer name for instrumented resolvers.
const defaultTracerName = "cmdroute"

// TraceConfig configures the OpenTelemetry tracing.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "cmdroute").
	TracerName string

	// IncludeArgs records the raw invocation tokens on the span.
	// Arguments may contain sensitive values - disabled by default.
	IncludeArgs bool

	// AttributeExtractor extracts custom attributes per resolution.
	AttributeExtractor func(in route.ParsedInput) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry tracing.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithIncludeArgs enables recording the invocation tokens on spans.
func WithIncludeArgs(include bool) TraceOption {
	return func(c *TraceConfig) {
		c.IncludeArgs = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(fn func(in route.ParsedInput) []attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.AttributeExtractor = fn
	}
}

func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName: defaultTracerName,
	}
}
