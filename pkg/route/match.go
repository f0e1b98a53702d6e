package route

import "strings"

// MatchResult is the outcome of matching one input against one route.
// It is short-lived: produced and consumed within a single resolution
// pass.
type MatchResult struct {
	Route *CompiledRoute

	// Viable reports that every structural rule was satisfied:
	// literals matched, required parameters and options were present,
	// option values were available where demanded.
	Viable bool

	// Exact reports that the route is viable and no input token was
	// left unconsumed. Only exact matches are eligible for selection.
	Exact bool

	// Values holds single-valued raw bindings keyed by binding name.
	// Flags bind "true"; a value-optional option that appeared without
	// a value binds "".
	Values map[string]string

	// Lists holds the catch-all binding and repeated-option bindings,
	// in command-line order.
	Lists map[string][]string

	// OptionTokens are the input indexes consumed during the option
	// scan, in scan order.
	OptionTokens []int

	// Reason explains a rejection; empty for exact matches.
	Reason string
}

// reject marks the result non-viable with a reason.
func (m *MatchResult) reject(reason string) MatchResult {
	m.Viable = false
	m.Exact = false
	m.Reason = reason
	return *m
}

// matchesOptionToken reports whether tok is one of the option's
// declared forms. An absent form stays empty and never matches, so a
// short-only option cannot collide with the bare "--" marker.
func (s Segment) matchesOptionToken(tok string) bool {
	if s.Long != "" && tok == "--"+s.Long {
		return true
	}
	if s.Short != "" && tok == "-"+s.Short {
		return true
	}
	return false
}

// Match attempts the route against a tokenized invocation.
//
// Options are scanned first, across the whole input up to the
// end-of-options marker; positional segments then walk the remaining
// unconsumed tokens in order. A route with a required option absent
// from the input is rejected outright — it never proceeds with a
// defaulted value.
func (r *CompiledRoute) Match(in ParsedInput) MatchResult {
	res := MatchResult{
		Route:  r,
		Values: make(map[string]string),
		Lists:  make(map[string][]string),
	}

	consumed := make([]bool, len(in.Args))
	if in.Terminator >= 0 {
		consumed[in.Terminator] = true
	}
	scanEnd := in.optionScanEnd()

	// Option scan. Repeated options collect every occurrence; scalar
	// options bind the first occurrence and consume the rest so
	// duplicates never leak into positional matching.
	for _, oi := range r.options {
		opt := r.segments[oi]
		name := opt.BindName()
		found := 0

		for i := 0; i < scanEnd; i++ {
			if consumed[i] || !opt.matchesOptionToken(in.Args[i]) {
				continue
			}
			consumed[i] = true
			res.OptionTokens = append(res.OptionTokens, i)
			found++

			value := "true"
			if opt.TakesValue {
				vi := i + 1
				if vi < len(in.Args) && vi != in.Terminator && !consumed[vi] {
					value = in.Args[vi]
					consumed[vi] = true
					res.OptionTokens = append(res.OptionTokens, vi)
				} else if opt.ValueOptional {
					value = ""
				} else {
					return res.reject("option " + opt.String() + " requires a value")
				}
			}

			if opt.Repeated {
				res.Lists[name] = append(res.Lists[name], value)
			} else if _, bound := res.Values[name]; !bound {
				res.Values[name] = value
			}
		}

		if found == 0 && !opt.Optional {
			return res.reject("missing required option " + opt.String())
		}
	}

	// Positional walk over the tokens the option scan left behind.
	var pos []int
	for i := range in.Args {
		if !consumed[i] {
			pos = append(pos, i)
		}
	}

	pi := 0
	for si, segIdx := range r.positional {
		seg := r.segments[segIdx]
		switch seg.Kind {
		case SegmentLiteral:
			if pi >= len(pos) {
				return res.reject("missing literal " + seg.Text)
			}
			tok := in.Args[pos[pi]]
			if !r.literalEqual(seg.Text, tok) {
				return res.reject("expected " + seg.Text + ", got " + tok)
			}
			pi++

		case SegmentParameter:
			if seg.Optional {
				// Consume a token only when more tokens remain than
				// the segments after this one strictly require.
				if len(pos)-pi > r.requiredSlotsAfter(si) {
					if pi < len(pos) {
						res.Values[seg.Name] = in.Args[pos[pi]]
						pi++
					}
				}
				continue
			}
			if pi >= len(pos) {
				return res.reject("missing argument {" + seg.Name + "}")
			}
			res.Values[seg.Name] = in.Args[pos[pi]]
			pi++

		case SegmentCatchAll:
			rest := make([]string, 0, len(pos)-pi)
			for ; pi < len(pos); pi++ {
				rest = append(rest, in.Args[pos[pi]])
			}
			res.Lists[seg.Name] = rest
		}
	}

	res.Viable = true
	res.Exact = pi == len(pos)
	if !res.Exact {
		res.Reason = "unconsumed input tokens"
	}
	return res
}

// requiredSlotsAfter counts the positional tokens strictly demanded by
// the segments after positional index si: literals and required
// parameters. A catch-all demands none.
func (r *CompiledRoute) requiredSlotsAfter(si int) int {
	required := 0
	for _, segIdx := range r.positional[si+1:] {
		seg := r.segments[segIdx]
		switch seg.Kind {
		case SegmentLiteral:
			required++
		case SegmentParameter:
			if !seg.Optional {
				required++
			}
		}
	}
	return required
}

func (r *CompiledRoute) literalEqual(want, got string) bool {
	if r.caseInsensitive {
		return strings.EqualFold(want, got)
	}
	return want == got
}
