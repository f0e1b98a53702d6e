package route

import "strings"

// SegmentKind discriminates the segment variants.
type SegmentKind uint8

const (
	// SegmentLiteral is fixed text that must match an input token exactly.
	SegmentLiteral SegmentKind = iota

	// SegmentParameter is a named positional value.
	SegmentParameter

	// SegmentOption is a --long / -s option, with or without a value.
	SegmentOption

	// SegmentCatchAll greedily consumes all remaining positional tokens.
	SegmentCatchAll

	// SegmentEndOfOptions is the "--" marker: option scanning stops
	// here and everything after it is positional material.
	SegmentEndOfOptions
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentParameter:
		return "parameter"
	case SegmentOption:
		return "option"
	case SegmentCatchAll:
		return "catch-all"
	case SegmentEndOfOptions:
		return "end-of-options"
	}
	return "unknown"
}

// Segment is one unit of a route pattern. It is a tagged variant:
// Kind selects which fields are meaningful.
type Segment struct {
	Kind SegmentKind

	// Text is the fixed text of a literal segment.
	Text string

	// Name is the binding name of a parameter or catch-all, or the
	// value name of an option that takes a value.
	Name string

	// TypeConstraint is the type-constraint name, empty for untyped.
	TypeConstraint string

	// Optional marks an optional parameter or an optional option.
	Optional bool

	// Long and Short are the option forms without their dashes. At
	// least one is non-empty for an option segment; an absent form
	// stays empty and is never matched against input.
	Long  string
	Short string

	// TakesValue reports whether the option captures a value token.
	// When false the option is a flag.
	TakesValue bool

	// ValueOptional allows the option to appear without a value token.
	ValueOptional bool

	// Repeated collects every occurrence of the option, in
	// command-line order, instead of only the first.
	Repeated bool
}

// BindName returns the name match results are keyed by: the explicit
// parameter or value name when present, otherwise the option's long
// form, otherwise its short form.
func (s Segment) BindName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Long != "" {
		return s.Long
	}
	return s.Short
}

// positional reports whether the segment consumes positional tokens.
func (s Segment) positional() bool {
	switch s.Kind {
	case SegmentLiteral, SegmentParameter, SegmentCatchAll:
		return true
	}
	return false
}

// String reconstructs the canonical pattern text for the segment.
func (s Segment) String() string {
	var sb strings.Builder
	switch s.Kind {
	case SegmentLiteral:
		sb.WriteString(s.Text)
	case SegmentParameter:
		sb.WriteByte('{')
		sb.WriteString(s.Name)
		if s.Optional {
			sb.WriteByte('?')
		}
		if s.TypeConstraint != "" {
			sb.WriteByte(':')
			sb.WriteString(s.TypeConstraint)
		}
		sb.WriteByte('}')
	case SegmentCatchAll:
		sb.WriteString("{*")
		sb.WriteString(s.Name)
		if s.TypeConstraint != "" {
			sb.WriteByte(':')
			sb.WriteString(s.TypeConstraint)
		}
		sb.WriteByte('}')
	case SegmentOption:
		if s.Long != "" {
			sb.WriteString("--")
			sb.WriteString(s.Long)
		}
		if s.Short != "" {
			if s.Long != "" {
				sb.WriteByte(',')
			}
			sb.WriteByte('-')
			sb.WriteString(s.Short)
		}
		if s.Optional {
			sb.WriteByte('?')
		}
		if s.TakesValue {
			sb.WriteByte('{')
			sb.WriteString(s.Name)
			if s.ValueOptional {
				sb.WriteByte('?')
			}
			if s.TypeConstraint != "" {
				sb.WriteByte(':')
				sb.WriteString(s.TypeConstraint)
			}
			sb.WriteByte('}')
		}
		if s.Repeated {
			sb.WriteByte('*')
		}
	case SegmentEndOfOptions:
		sb.WriteString("--")
	}
	return sb.String()
}

// shape returns a normalized signature of the segment used to detect
// identically-shaped routes at registration time. Binding names are
// erased; structure, forms, and type constraints are kept.
func (s Segment) shape() string {
	switch s.Kind {
	case SegmentLiteral:
		return "lit:" + s.Text
	case SegmentParameter:
		sig := "param"
		if s.Optional {
			sig += "?"
		}
		return sig + ":" + s.TypeConstraint
	case SegmentCatchAll:
		return "catchall:" + s.TypeConstraint
	case SegmentOption:
		sig := "opt:--" + s.Long + ",-" + s.Short
		if s.Optional {
			sig += "?"
		}
		if s.TakesValue {
			sig += "=" + s.TypeConstraint
			if s.ValueOptional {
				sig += "?"
			}
		}
		if s.Repeated {
			sig += "*"
		}
		return sig
	case SegmentEndOfOptions:
		return "--"
	}
	return ""
}
