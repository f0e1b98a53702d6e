package observe

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

// Resolver wraps a route.RouteSet with Prometheus metrics and
// OpenTelemetry tracing. The underlying set should be frozen before
// the resolver is shared across goroutines.
//
// Example:
//
//	set := route.NewRouteSet()
//	set.Add("deploy {env} --force,-f")
//	set.Freeze()
//
//	resolver := observe.New(set,
//	    observe.WithMetrics(observe.WithNamespace("myapp")),
//	    observe.WithTracing(),
//	)
//	res, ok := resolver.Resolve(ctx, route.NewInput(args))
type Resolver struct {
	set     *route.RouteSet
	metrics *metrics
	tracing *TraceConfig
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMetrics enables Prometheus metrics.
func WithMetrics(opts ...MetricsOption) Option {
	return func(r *Resolver) {
		config := defaultMetricsConfig()
		for _, opt := range opts {
			opt(&config)
		}
		r.metrics = initMetrics(config)
	}
}

// WithTracing enables OpenTelemetry tracing. The tracer comes from
// the global tracer provider; configure that in main() before
// resolving.
func WithTracing(opts ...TraceOption) Option {
	return func(r *Resolver) {
		config := defaultTraceConfig()
		for _, opt := range opts {
			opt(&config)
		}
		config.tracer = otel.Tracer(config.TracerName)
		r.tracing = &config
	}
}

// New creates an instrumented resolver around a route set.
func New(set *route.RouteSet, opts ...Option) *Resolver {
	r := &Resolver{set: set}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics != nil {
		r.metrics.routesRegistered.Set(float64(set.Len()))
	}
	return r
}

// Set returns the wrapped route set.
func (r *Resolver) Set() *route.RouteSet {
	return r.set
}

// Resolve resolves the input through the wrapped set, recording a
// span and metrics around the pass. A non-match records the
// "no_match" outcome; it is never a span error.
func (r *Resolver) Resolve(ctx context.Context, in route.ParsedInput) (*route.Resolution, bool) {
	var span trace.Span
	if r.tracing != nil {
		attrs := []attribute.KeyValue{
			attribute.Int("cmdroute.argc", len(in.Args)),
		}
		if r.tracing.IncludeArgs {
			attrs = append(attrs, attribute.String("cmdroute.args", strings.Join(in.Args, " ")))
		}
		if r.tracing.AttributeExtractor != nil {
			attrs = append(attrs, r.tracing.AttributeExtractor(in)...)
		}
		_, span = r.tracing.tracer.Start(ctx, "cmdroute.resolve",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
	}

	start := time.Now()
	res, ok := r.set.Resolve(in)
	duration := time.Since(start).Seconds()

	outcome := "no_match"
	if ok {
		outcome = "matched"
	}

	if r.metrics != nil {
		r.metrics.resolveDuration.Observe(duration)
		r.metrics.resolutionsTotal.WithLabelValues(outcome).Inc()
	}

	if span != nil {
		span.SetAttributes(attribute.String("cmdroute.outcome", outcome))
		if ok {
			span.SetAttributes(
				attribute.String("cmdroute.route", res.Route.Pattern()),
				attribute.Int("cmdroute.specificity", res.Route.Specificity()),
				attribute.Int("cmdroute.index", res.Index),
			)
		}
	}

	return res, ok
}

// Explain runs every route against the input, counting rejection
// reasons when metrics are enabled, and returns the per-route
// outcomes. Meant for diagnostic endpoints, not dispatch.
func (r *Resolver) Explain(in route.ParsedInput) []route.MatchResult {
	results := r.set.Explain(in)
	if r.metrics != nil {
		for _, m := range results {
			if !m.Exact {
				r.metrics.rejectionsTotal.WithLabelValues(categorizeReason(m.Reason)).Inc()
			}
		}
	}
	return results
}
