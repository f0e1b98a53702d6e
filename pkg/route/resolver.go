package route

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cmdroute-dev/cmdroute/pkg/convert"
)

// Resolution is the winning outcome of resolving one invocation.
type Resolution struct {
	// Route is the winning route.
	Route *CompiledRoute

	// Index is the winner's registration index; ties on specificity
	// are broken by the lowest index (first registered wins).
	Index int

	// Match is the raw match that won.
	Match MatchResult

	// Values holds the typed bindings: converted values where the
	// segment carried a type constraint, flag booleans for flags, and
	// raw strings otherwise.
	Values map[string]any

	// Lists holds the catch-all and repeated-option bindings, each
	// element converted the same way.
	Lists map[string][]any
}

// RouteSet is an ordered collection of compiled routes with a
// build-then-freeze lifecycle: Add during single-threaded start-up,
// Freeze once, then Resolve concurrently without synchronization.
type RouteSet struct {
	mu     sync.Mutex
	frozen atomic.Bool

	routes []*CompiledRoute
	shapes map[string]int // shape signature -> first registration index

	registry *convert.Registry
	logger   *slog.Logger
}

// SetOption configures a RouteSet.
type SetOption func(*RouteSet)

// WithConverters sets the conversion registry used both to validate
// type constraints at Add time and to bind typed values at Resolve
// time. Defaults to convert.Default().
func WithConverters(reg *convert.Registry) SetOption {
	return func(s *RouteSet) {
		s.registry = reg
	}
}

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *slog.Logger) SetOption {
	return func(s *RouteSet) {
		s.logger = logger
	}
}

// NewRouteSet creates an empty route set.
func NewRouteSet(opts ...SetOption) *RouteSet {
	s := &RouteSet{
		shapes:   make(map[string]int),
		registry: convert.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add compiles a pattern and registers the route. Registration order
// is significant: it is the tie-break among equal-specificity exact
// matches.
func (s *RouteSet) Add(pattern string, opts ...CompileOption) (*CompiledRoute, error) {
	compiled, err := Compile(pattern, append([]CompileOption{WithRegistry(s.registry)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := s.AddRoute(compiled); err != nil {
		return nil, err
	}
	return compiled, nil
}

// AddRoute registers an already-compiled route. It fails once the set
// is frozen. Two routes with an identical segment shape are legal —
// the first registered wins every tie — but a diagnostic is logged.
func (s *RouteSet) AddRoute(r *CompiledRoute) error {
	if s.frozen.Load() {
		return newError("R400").WithPattern(r.Pattern()).
			WithSuggestion("register all routes before calling Freeze")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shape := r.shapeSignature()
	if first, dup := s.shapes[shape]; dup {
		s.logger.Warn("routes share an identical shape; the earlier registration wins every tie",
			"pattern", r.Pattern(),
			"existing", s.routes[first].Pattern())
	} else {
		s.shapes[shape] = len(s.routes)
	}

	s.routes = append(s.routes, r)
	return nil
}

// Freeze ends the build phase. After Freeze the set is read-only and
// Resolve may be called from any number of goroutines.
func (s *RouteSet) Freeze() {
	s.frozen.Store(true)
}

// Frozen reports whether the set has been frozen.
func (s *RouteSet) Frozen() bool {
	return s.frozen.Load()
}

// Len returns the number of registered routes.
func (s *RouteSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}

// Routes returns the registered routes in registration order.
func (s *RouteSet) Routes() []*CompiledRoute {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*CompiledRoute, len(s.routes))
	copy(out, s.routes)
	return out
}

// Resolve matches the input against every registered route, keeps the
// viable exact matches, and selects the one with the highest
// specificity, breaking ties by registration order. Candidates whose
// typed values fail conversion are rejected and the next candidate is
// tried. A false return is the normal "no command found" outcome, not
// an error.
func (s *RouteSet) Resolve(in ParsedInput) (*Resolution, bool) {
	type candidate struct {
		index int
		match MatchResult
	}
	var candidates []candidate

	for i, r := range s.routes {
		m := r.Match(in)
		if m.Exact {
			candidates = append(candidates, candidate{index: i, match: m})
		}
	}

	// Stable sort on specificity alone: equal-specificity candidates
	// keep registration order, which is the documented tie-break.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].match.Route.Specificity() > candidates[j].match.Route.Specificity()
	})

	for _, c := range candidates {
		res, err := s.bind(c.index, c.match)
		if err != nil {
			continue
		}
		return res, true
	}
	return nil, false
}

// Explain matches the input against every registered route and
// returns each per-route outcome in registration order, including
// rejections. Intended for diagnostics and tooling, not dispatch.
func (s *RouteSet) Explain(in ParsedInput) []MatchResult {
	out := make([]MatchResult, len(s.routes))
	for i, r := range s.routes {
		out[i] = r.Match(in)
	}
	return out
}

// bind applies type conversion to a winning candidate's raw values.
// Any conversion failure rejects the whole candidate.
func (s *RouteSet) bind(index int, m MatchResult) (*Resolution, error) {
	res := &Resolution{
		Route:  m.Route,
		Index:  index,
		Match:  m,
		Values: make(map[string]any, len(m.Values)),
		Lists:  make(map[string][]any, len(m.Lists)),
	}

	for _, seg := range m.Route.segments {
		name := seg.BindName()

		if seg.Kind == SegmentOption && !seg.TakesValue {
			if seg.Repeated {
				if raw, ok := m.Lists[name]; ok {
					flags := make([]any, len(raw))
					for i := range raw {
						flags[i] = true
					}
					res.Lists[name] = flags
				}
			} else if _, ok := m.Values[name]; ok {
				res.Values[name] = true
			}
			continue
		}

		if raw, ok := m.Values[name]; ok {
			v, err := s.convertOne(seg, raw)
			if err != nil {
				return nil, err
			}
			res.Values[name] = v
		}
		if raw, ok := m.Lists[name]; ok {
			vs := make([]any, len(raw))
			for i, rv := range raw {
				v, err := s.convertOne(seg, rv)
				if err != nil {
					return nil, err
				}
				vs[i] = v
			}
			res.Lists[name] = vs
		}
	}

	return res, nil
}

// convertOne converts a single raw value per the segment's type
// constraint. Untyped values pass through as strings; the empty value
// of a value-optional option is never converted.
func (s *RouteSet) convertOne(seg Segment, raw string) (any, error) {
	if seg.TypeConstraint == "" {
		return raw, nil
	}
	if raw == "" && seg.ValueOptional {
		return "", nil
	}
	return s.registry.Convert(raw, seg.TypeConstraint)
}
