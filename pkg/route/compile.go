package route

import (
	"strings"

	"github.com/cmdroute-dev/cmdroute/pkg/convert"
)

// Specificity weights, one fixed contribution per segment, independent
// of position. These constants are part of the public contract: any
// ahead-of-time emitter that reproduces matching decisions must score
// with exactly these values.
const (
	WeightLiteral           = 100
	WeightRequiredOption    = 50
	WeightOptionalOption    = 25
	WeightTypedParameter    = 20
	WeightUntypedParameter  = 10
	WeightOptionalParameter = 5
	WeightCatchAll          = 1
)

// Weight returns the segment's specificity contribution.
func (s Segment) Weight() int {
	switch s.Kind {
	case SegmentLiteral:
		return WeightLiteral
	case SegmentOption:
		if s.Optional {
			return WeightOptionalOption
		}
		return WeightRequiredOption
	case SegmentParameter:
		if s.Optional {
			return WeightOptionalParameter
		}
		if s.TypeConstraint != "" {
			return WeightTypedParameter
		}
		return WeightUntypedParameter
	case SegmentCatchAll:
		return WeightCatchAll
	}
	// The -- separator binds nothing and scores nothing.
	return 0
}

// CompiledRoute is the immutable, validated, matching-ready form of a
// route pattern. It is created once by Compile, never mutated, and safe
// to share across goroutines and repeated matches.
type CompiledRoute struct {
	pattern     string
	segments    []Segment
	specificity int

	positional []int // segment indexes that consume positional tokens
	options    []int // segment indexes of options
	byLong     map[string]int
	byShort    map[string]int

	catchAll        int // segment index of the catch-all, or -1
	caseInsensitive bool
}

// compileConfig carries the compile-time configuration choices.
type compileConfig struct {
	registry        *convert.Registry
	caseInsensitive bool
}

// CompileOption configures pattern compilation.
type CompileOption func(*compileConfig)

// WithRegistry validates type constraints against the given registry
// instead of the shared default.
func WithRegistry(r *convert.Registry) CompileOption {
	return func(c *compileConfig) {
		c.registry = r
	}
}

// WithCaseInsensitiveLiterals makes literal segments match input
// tokens case-insensitively. The default is case-sensitive.
func WithCaseInsensitiveLiterals() CompileOption {
	return func(c *compileConfig) {
		c.caseInsensitive = true
	}
}

// Compile lexes, parses, and compiles a route pattern. It is pure:
// identical input always yields a structurally identical route and
// specificity value. On failure it returns a *PatternError and no
// partial route.
func Compile(pattern string, opts ...CompileOption) (*CompiledRoute, error) {
	cfg := compileConfig{registry: convert.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, lexErr := lexPattern(pattern)
	if lexErr != nil {
		return nil, lexErr
	}

	segments, parseErr := parsePattern(pattern, toks, cfg.registry.Known)
	if parseErr != nil {
		return nil, parseErr
	}

	r := &CompiledRoute{
		pattern:         pattern,
		segments:        segments,
		catchAll:        -1,
		byLong:          make(map[string]int),
		byShort:         make(map[string]int),
		caseInsensitive: cfg.caseInsensitive,
	}

	for i, seg := range segments {
		r.specificity += seg.Weight()

		switch seg.Kind {
		case SegmentOption:
			if seg.Long != "" {
				if _, dup := r.byLong[seg.Long]; dup {
					return nil, newError("R306").WithPattern(pattern).
						WithDetail("option form --%s declared twice", seg.Long)
				}
				r.byLong[seg.Long] = i
			}
			if seg.Short != "" {
				if _, dup := r.byShort[seg.Short]; dup {
					return nil, newError("R306").WithPattern(pattern).
						WithDetail("option form -%s declared twice", seg.Short)
				}
				r.byShort[seg.Short] = i
			}
			r.options = append(r.options, i)
		case SegmentCatchAll:
			r.catchAll = i
			r.positional = append(r.positional, i)
		case SegmentLiteral, SegmentParameter:
			r.positional = append(r.positional, i)
		}
	}

	return r, nil
}

// MustCompile is Compile that panics on error, for routes known at
// program start.
func MustCompile(pattern string, opts ...CompileOption) *CompiledRoute {
	r, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the original pattern text.
func (r *CompiledRoute) Pattern() string {
	return r.pattern
}

// Segments returns a copy of the ordered segment list.
func (r *CompiledRoute) Segments() []Segment {
	out := make([]Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Specificity returns the precomputed specificity score.
func (r *CompiledRoute) Specificity() int {
	return r.specificity
}

// CatchAllName returns the catch-all binding name, or "" when the
// route has no catch-all.
func (r *CompiledRoute) CatchAllName() string {
	if r.catchAll < 0 {
		return ""
	}
	return r.segments[r.catchAll].Name
}

// Option returns the option segment registered under the given long
// or short form.
func (r *CompiledRoute) Option(form string) (Segment, bool) {
	if i, ok := r.byLong[form]; ok {
		return r.segments[i], true
	}
	if i, ok := r.byShort[form]; ok {
		return r.segments[i], true
	}
	return Segment{}, false
}

// BindNames returns the binding names in declaration order:
// positional parameters and the catch-all first, then options.
func (r *CompiledRoute) BindNames() []string {
	var names []string
	for _, i := range r.positional {
		seg := r.segments[i]
		if seg.Kind == SegmentParameter || seg.Kind == SegmentCatchAll {
			names = append(names, seg.Name)
		}
	}
	for _, i := range r.options {
		names = append(names, r.segments[i].BindName())
	}
	return names
}

// String reconstructs the canonical pattern: the same segments with
// normalized whitespace.
func (r *CompiledRoute) String() string {
	parts := make([]string, len(r.segments))
	for i, seg := range r.segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, " ")
}

// shapeSignature normalizes the route's structure for duplicate-shape
// detection at registration time.
func (r *CompiledRoute) shapeSignature() string {
	parts := make([]string, len(r.segments))
	for i, seg := range r.segments {
		parts[i] = seg.shape()
	}
	return strings.Join(parts, " ")
}
