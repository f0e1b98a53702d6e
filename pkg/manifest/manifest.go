// Package manifest loads declarative YAML route manifests and builds
// frozen route sets from them.
//
// A manifest declares routes, and optionally enumeration types the
// patterns may use as constraints:
//
//	types:
//	  - name: mode
//	    values: [up, down, nearest]
//	routes:
//	  - pattern: "round {value:double} --mode {m:mode}"
//	    summary: Round a value with an explicit mode
//	  - pattern: "round {value:double}"
//	    summary: Round a value
//
// Declaration order in the file is registration order, which is the
// tie-break among equal-specificity matches.
package manifest

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmdroute-dev/cmdroute/pkg/convert"
	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

// Manifest is a parsed route manifest.
type Manifest struct {
	// Types declares enumeration type constraints available to the
	// patterns, on top of the built-in converters.
	Types []TypeDecl `yaml:"types"`

	// Routes are the route declarations, in registration order.
	Routes []RouteDecl `yaml:"routes"`
}

// TypeDecl declares an enumeration type constraint.
type TypeDecl struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// RouteDecl declares one route.
type RouteDecl struct {
	// Pattern is the route pattern string.
	Pattern string `yaml:"pattern"`

	// Summary is a one-line description for tooling output.
	Summary string `yaml:"summary"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse parses manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for i, t := range m.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("types[%d]: missing name", i)
		}
		if len(t.Values) == 0 {
			return nil, fmt.Errorf("types[%d] (%s): missing values", i, t.Name)
		}
	}
	for i, r := range m.Routes {
		if r.Pattern == "" {
			return nil, fmt.Errorf("routes[%d]: missing pattern", i)
		}
	}
	return &m, nil
}

// buildConfig carries Build options.
type buildConfig struct {
	logger          *slog.Logger
	registry        *convert.Registry
	caseInsensitive bool
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithLogger sets the logger passed to the route set.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// WithConverters sets the base conversion registry the manifest's
// enum types are registered into. Defaults to a fresh registry with
// the built-ins, so manifests never mutate the shared default.
func WithConverters(reg *convert.Registry) BuildOption {
	return func(c *buildConfig) {
		c.registry = reg
	}
}

// WithCaseInsensitiveLiterals compiles every route with
// case-insensitive literal matching.
func WithCaseInsensitiveLiterals() BuildOption {
	return func(c *buildConfig) {
		c.caseInsensitive = true
	}
}

// Build registers the manifest's enum types, compiles every route in
// declaration order, and returns a frozen set. Compilation failures
// are collected across the whole manifest into a *route.MultiError so
// a single run reports every broken pattern.
func (m *Manifest) Build(opts ...BuildOption) (*route.RouteSet, error) {
	cfg := buildConfig{
		logger:   slog.Default(),
		registry: convert.NewRegistry(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, t := range m.Types {
		cfg.registry.RegisterEnum(t.Name, t.Values...)
	}

	set := route.NewRouteSet(
		route.WithConverters(cfg.registry),
		route.WithLogger(cfg.logger),
	)

	var compileOpts []route.CompileOption
	if cfg.caseInsensitive {
		compileOpts = append(compileOpts, route.WithCaseInsensitiveLiterals())
	}

	var merr route.MultiError
	for _, decl := range m.Routes {
		if _, err := set.Add(decl.Pattern, compileOpts...); err != nil {
			if perr, ok := err.(*route.PatternError); ok {
				merr.Errors = append(merr.Errors, perr)
				continue
			}
			return nil, err
		}
	}
	if len(merr.Errors) > 0 {
		return nil, &merr
	}

	set.Freeze()
	return set, nil
}

// Summaries returns pattern → summary for tooling output.
func (m *Manifest) Summaries() map[string]string {
	out := make(map[string]string, len(m.Routes))
	for _, r := range m.Routes {
		out[r.Pattern] = r.Summary
	}
	return out
}
