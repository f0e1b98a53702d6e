package route

import "unicode"

// parser consumes the token stream into a validated segment sequence.
// Parsing is all-or-nothing: any violation returns an error and no
// partial segment list.
type parser struct {
	pattern string
	toks    []token
	pos     int
	known   func(typeName string) bool
}

func parsePattern(pattern string, toks []token, known func(string) bool) ([]Segment, *PatternError) {
	p := &parser{pattern: pattern, toks: toks, known: known}

	var segments []Segment
	var offsets []int

	for {
		p.skipBreaks()
		tok := p.cur()
		if tok.typ == tokenEnd {
			break
		}

		start := tok.offset
		var seg Segment
		var err *PatternError

		switch tok.typ {
		case tokenLiteral:
			seg, err = p.parseLiteral()
		case tokenOpen:
			seg, err = p.parseParameter()
		case tokenLongOption, tokenShortOption:
			seg, err = p.parseOption()
		case tokenEndOfOptions:
			p.advance()
			seg = Segment{Kind: SegmentEndOfOptions}
		default:
			err = p.unexpected(tok)
		}
		if err != nil {
			return nil, err.WithPattern(pattern)
		}

		// Each segment must be followed by whitespace or the end of
		// the pattern; "deploy{env}" is a syntax error, not a literal.
		if t := p.cur(); t.typ != tokenBreak && t.typ != tokenEnd {
			return nil, p.unexpected(t).WithPattern(pattern).
				WithSuggestion("separate segments with whitespace")
		}

		segments = append(segments, seg)
		offsets = append(offsets, start)
	}

	if err := validateSegments(segments, offsets, p.known); err != nil {
		return nil, err.WithPattern(pattern)
	}
	return segments, nil
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.typ != tokenEnd {
		p.pos++
	}
	return t
}

func (p *parser) skipBreaks() {
	for p.cur().typ == tokenBreak {
		p.pos++
	}
}

// peekAt returns the token n positions ahead without consuming,
// clamping at the end token.
func (p *parser) peekAt(n int) token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) unexpected(tok token) *PatternError {
	return newError("R201").WithOffset(tok.offset).
		WithDetail("found %s", tok.typ)
}

// parseLiteral consumes a single literal token.
func (p *parser) parseLiteral() (Segment, *PatternError) {
	tok := p.advance()
	return Segment{Kind: SegmentLiteral, Text: tok.value}, nil
}

// parseParameter consumes "{name}", "{name?}", "{name:type}",
// "{name?:type}", "{*name}", or "{*name:type}".
func (p *parser) parseParameter() (Segment, *PatternError) {
	open := p.advance() // '{'
	seg := Segment{Kind: SegmentParameter}

	if p.cur().typ == tokenStar {
		p.advance()
		seg.Kind = SegmentCatchAll
	}

	name, err := p.parseName(open)
	if err != nil {
		return Segment{}, err
	}
	seg.Name = name

	if p.cur().typ == tokenQuestion {
		if seg.Kind == SegmentCatchAll {
			// A catch-all already matches zero tokens.
			return Segment{}, p.unexpected(p.cur()).
				WithSuggestion("a catch-all is always optional; drop the '?'")
		}
		p.advance()
		seg.Optional = true
	}

	if p.cur().typ == tokenColon {
		p.advance()
		typeName, err := p.parseName(open)
		if err != nil {
			return Segment{}, err
		}
		seg.TypeConstraint = typeName
	}

	if err := p.expectClose(open); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

// parseOption consumes an option declaration: one or both forms, an
// optional '?', an optional value spec in braces, and an optional
// trailing '*'.
func (p *parser) parseOption() (Segment, *PatternError) {
	seg := Segment{Kind: SegmentOption}

	tok := p.advance()
	if tok.typ == tokenLongOption {
		seg.Long = tok.value
		if p.cur().typ == tokenComma {
			p.advance()
			short := p.cur()
			if short.typ != tokenShortOption {
				return Segment{}, newError("R204").WithOffset(short.offset).
					WithSuggestion("write the short form as -x after the comma")
			}
			p.advance()
			seg.Short = short.value
		}
	} else {
		seg.Short = tok.value
	}

	if p.cur().typ == tokenQuestion {
		p.advance()
		seg.Optional = true
	}

	// The value spec may be separated from the option's forms by
	// whitespace: "--mode {m}" and "--mode{m}" declare the same option.
	// A catch-all group ("{*cmd}") is positional material, never a
	// value spec, so it stays its own segment.
	if p.cur().typ == tokenBreak && p.peekAt(1).typ == tokenOpen && p.peekAt(2).typ != tokenStar {
		p.advance()
	}

	if p.cur().typ == tokenOpen {
		open := p.advance()
		seg.TakesValue = true
		name, err := p.parseName(open)
		if err != nil {
			return Segment{}, err
		}
		seg.Name = name
		if p.cur().typ == tokenQuestion {
			p.advance()
			seg.ValueOptional = true
		}
		if p.cur().typ == tokenColon {
			p.advance()
			typeName, err := p.parseName(open)
			if err != nil {
				return Segment{}, err
			}
			seg.TypeConstraint = typeName
		}
		if err := p.expectClose(open); err != nil {
			return Segment{}, err
		}
	}

	if p.cur().typ == tokenStar {
		p.advance()
		seg.Repeated = true
	}

	return seg, nil
}

// parseName consumes one literal token inside braces.
func (p *parser) parseName(open token) (string, *PatternError) {
	tok := p.cur()
	switch tok.typ {
	case tokenLiteral:
		p.advance()
		return tok.value, nil
	case tokenBreak:
		return "", newError("R203").WithOffset(tok.offset)
	case tokenClose:
		return "", newError("R202").WithOffset(open.offset)
	case tokenEnd:
		return "", newError("R200").WithOffset(open.offset)
	default:
		return "", p.unexpected(tok)
	}
}

func (p *parser) expectClose(open token) *PatternError {
	tok := p.cur()
	switch tok.typ {
	case tokenClose:
		p.advance()
		return nil
	case tokenEnd:
		return newError("R200").WithOffset(open.offset).
			WithSuggestion("add a closing '}'")
	case tokenBreak:
		return newError("R203").WithOffset(tok.offset)
	default:
		return p.unexpected(tok)
	}
}

// validateSegments performs the structural checks that span segments.
func validateSegments(segments []Segment, offsets []int, known func(string) bool) *PatternError {
	sawCatchAll := false
	sawOptionalParam := false
	sawEndOfOptions := false
	bound := make(map[string]int) // bind name -> segment index

	for i, seg := range segments {
		off := offsets[i]

		switch seg.Kind {
		case SegmentEndOfOptions:
			if sawEndOfOptions {
				return newError("R201").WithOffset(off).
					WithDetail("a pattern may contain at most one -- separator")
			}
			sawEndOfOptions = true
		case SegmentParameter, SegmentCatchAll:
			if err := checkIdentifier(seg.Name, off); err != nil {
				return err
			}
		case SegmentOption:
			if seg.Long == "" && seg.Short == "" {
				return newError("R304").WithOffset(off)
			}
			if seg.Long != "" {
				if err := checkIdentifier(seg.Long, off); err != nil {
					return err
				}
			}
			if seg.Short != "" {
				if err := checkIdentifier(seg.Short, off); err != nil {
					return err
				}
			}
			if seg.TakesValue {
				if err := checkIdentifier(seg.Name, off); err != nil {
					return err
				}
			}
		}

		if seg.TypeConstraint != "" && known != nil && !known(seg.TypeConstraint) {
			return newError("R301").WithOffset(off).
				WithDetail("type %q is not registered", seg.TypeConstraint).
				WithSuggestion("register a converter for it before compiling")
		}

		if seg.Kind == SegmentCatchAll {
			if sawCatchAll {
				return newError("R303").WithOffset(off)
			}
			sawCatchAll = true
		} else if sawCatchAll && seg.positional() {
			return newError("R302").WithOffset(off)
		}

		if seg.Kind == SegmentParameter {
			if seg.Optional {
				sawOptionalParam = true
			} else if sawOptionalParam {
				return newError("R305").WithOffset(off).
					WithSuggestion("make it optional or move it before the optional parameter")
			}
		}

		if seg.Kind == SegmentParameter || seg.Kind == SegmentCatchAll ||
			(seg.Kind == SegmentOption) {
			name := seg.BindName()
			if prev, dup := bound[name]; dup {
				return newError("R306").WithOffset(off).
					WithDetail("%q already bound by segment %d", name, prev+1)
			}
			bound[name] = i
		}
	}

	return nil
}

// checkIdentifier enforces the identifier rule: a letter followed by
// letters, digits, or underscores.
func checkIdentifier(name string, off int) *PatternError {
	invalid := func() *PatternError {
		return newError("R300").WithOffset(off).
			WithDetail("%q must start with a letter and contain only letters, digits, and underscores", name)
	}
	if name == "" {
		return invalid()
	}
	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return invalid()
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return invalid()
		}
	}
	return nil
}
