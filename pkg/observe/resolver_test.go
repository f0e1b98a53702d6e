package observe

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

func testSet(t *testing.T) *route.RouteSet {
	t.Helper()
	set := route.NewRouteSet()
	for _, p := range []string{
		"greet {name}",
		"deploy {env} --force,-f",
	} {
		if _, err := set.Add(p); err != nil {
			t.Fatalf("Add(%q): %v", p, err)
		}
	}
	set.Freeze()
	return set
}

func TestResolveWithoutInstrumentation(t *testing.T) {
	// A bare resolver is a plain passthrough.
	r := New(testSet(t))

	res, ok := r.Resolve(context.Background(), route.NewInput([]string{"greet", "Alice"}))
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Values["name"] != "Alice" {
		t.Errorf("expected name=Alice, got %v", res.Values["name"])
	}
}

func TestResolveRecordsOutcomeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(testSet(t), WithMetrics(WithRegistry(reg)))

	if _, ok := r.Resolve(context.Background(), route.NewInput([]string{"greet", "Alice"})); !ok {
		t.Fatal("expected a match")
	}
	if _, ok := r.Resolve(context.Background(), route.NewInput([]string{"nope"})); ok {
		t.Fatal("expected no match")
	}

	matched := testutil.ToFloat64(r.metrics.resolutionsTotal.WithLabelValues("matched"))
	if matched != 1 {
		t.Errorf("expected 1 matched resolution, got %v", matched)
	}
	noMatch := testutil.ToFloat64(r.metrics.resolutionsTotal.WithLabelValues("no_match"))
	if noMatch != 1 {
		t.Errorf("expected 1 no_match resolution, got %v", noMatch)
	}

	registered := testutil.ToFloat64(r.metrics.routesRegistered)
	if registered != 2 {
		t.Errorf("expected 2 registered routes, got %v", registered)
	}
}

func TestExplainCountsRejectionReasons(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(testSet(t), WithMetrics(WithRegistry(reg)))

	// "greet Alice" rejects the deploy route for its required option.
	results := r.Explain(route.NewInput([]string{"greet", "Alice"}))
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	count := testutil.ToFloat64(r.metrics.rejectionsTotal.WithLabelValues("missing_required_option"))
	if count != 1 {
		t.Errorf("expected 1 missing_required_option rejection, got %v", count)
	}
}

func TestMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(testSet(t), WithMetrics(WithRegistry(reg), WithNamespace("myapp")))

	if _, ok := r.Resolve(context.Background(), route.NewInput([]string{"greet", "Alice"})); !ok {
		t.Fatal("expected a match")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "myapp_resolutions_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected the namespace to prefix metric names")
	}
}

func TestCategorizeReason(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"missing required option --force,-f", "missing_required_option"},
		{"missing argument {name}", "missing_argument"},
		{"expected greet, got wave", "literal_mismatch"},
		{"missing literal deploy", "literal_mismatch"},
		{"option --env{e} requires a value", "option_needs_value"},
		{"unconsumed input tokens", "leftover_tokens"},
		{"something else entirely", "other"},
	}

	for _, tt := range tests {
		if got := categorizeReason(tt.reason); got != tt.want {
			t.Errorf("categorizeReason(%q): expected %s, got %s", tt.reason, tt.want, got)
		}
	}
}

func TestTracingResolveStillWorks(t *testing.T) {
	// Without a configured provider the global tracer is a no-op;
	// resolution must be unaffected.
	r := New(testSet(t), WithTracing(WithIncludeArgs(true)))

	res, ok := r.Resolve(context.Background(), route.NewInput([]string{"deploy", "prod", "-f"}))
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Values["force"] != true {
		t.Errorf("expected force=true, got %v", res.Values["force"])
	}
}
