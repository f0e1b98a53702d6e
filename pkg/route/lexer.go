package route

// lexPattern turns a pattern string into a flat token stream.
//
// This is a single left-to-right scan with no backtracking. A '-' only
// begins an option token at the start of a segment (start of pattern,
// after whitespace, or after the ',' separating an option's two forms);
// anywhere else it is ordinary literal text, so "foo-bar" is one
// literal.
func lexPattern(pattern string) ([]token, *PatternError) {
	var toks []token
	i, n := 0, len(pattern)
	atSegmentStart := true

	for i < n {
		c := pattern[i]
		switch {
		case c == ' ' || c == '\t':
			start := i
			for i < n && (pattern[i] == ' ' || pattern[i] == '\t') {
				i++
			}
			toks = append(toks, token{tokenBreak, start, pattern[start:i]})
			atSegmentStart = true

		case c == '{':
			toks = append(toks, token{tokenOpen, i, "{"})
			i++
			atSegmentStart = false

		case c == '}':
			toks = append(toks, token{tokenClose, i, "}"})
			i++
			atSegmentStart = false

		case c == ':':
			toks = append(toks, token{tokenColon, i, ":"})
			i++
			atSegmentStart = false

		case c == '?':
			toks = append(toks, token{tokenQuestion, i, "?"})
			i++
			atSegmentStart = false

		case c == '*':
			toks = append(toks, token{tokenStar, i, "*"})
			i++
			atSegmentStart = false

		case c == ',':
			toks = append(toks, token{tokenComma, i, ","})
			i++
			// The short form of an option follows the comma.
			atSegmentStart = true

		case c == '-' && atSegmentStart:
			start := i
			if i+1 < n && pattern[i+1] == '-' {
				// Long form, or the standalone end-of-options marker.
				i += 2
				nameStart := i
				for i < n && isNameByte(pattern[i]) {
					i++
				}
				name := pattern[nameStart:i]
				if name == "" {
					if i >= n || pattern[i] == ' ' || pattern[i] == '\t' {
						toks = append(toks, token{tokenEndOfOptions, start, "--"})
						atSegmentStart = false
						continue
					}
					return nil, newError("R102").
						WithPattern(pattern).WithOffset(start).
						WithSuggestion("write --name, -n, or a standalone -- separator")
				}
				toks = append(toks, token{tokenLongOption, start, name})
				atSegmentStart = false
				continue
			}
			// Short form: exactly one character.
			i++
			nameStart := i
			for i < n && isNameByte(pattern[i]) {
				i++
			}
			name := pattern[nameStart:i]
			if name == "" {
				return nil, newError("R102").
					WithPattern(pattern).WithOffset(start)
			}
			if len(name) > 1 {
				return nil, newError("R101").
					WithPattern(pattern).WithOffset(nameStart).
					WithDetail("got %q", name).
					WithSuggestion("use --" + name + " for a long form")
			}
			toks = append(toks, token{tokenShortOption, start, name})
			atSegmentStart = false

		default:
			start := i
			for i < n && !isSpecialByte(pattern[i]) {
				i++
			}
			toks = append(toks, token{tokenLiteral, start, pattern[start:i]})
			atSegmentStart = false
		}
	}

	toks = append(toks, token{tokenEnd, n, ""})
	return toks, nil
}

// isNameByte reports whether b can appear in an option or identifier
// name run. Hyphens are accepted here so that "--dry-run" lexes as one
// token; the parser rejects them during identifier validation.
func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	}
	return false
}

// isSpecialByte reports whether b terminates a literal run.
func isSpecialByte(b byte) bool {
	switch b {
	case ' ', '\t', '{', '}', ':', '?', '*', ',':
		return true
	}
	return false
}
