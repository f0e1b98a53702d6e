package route

// token is one lexical unit of a route pattern.
type token struct {
	typ    tokenType
	offset int    // byte offset into the pattern
	value  string // text for literals and option names
}

type tokenType uint8

const (
	// tokenLiteral is a bare run of literal text or an identifier.
	tokenLiteral tokenType = iota
	// tokenOpen is a U+007B ({) brace opening a parameter.
	tokenOpen
	// tokenClose is a U+007D (}) brace closing a parameter.
	tokenClose
	// tokenColon separates a name from its type constraint.
	tokenColon
	// tokenQuestion marks a parameter, option, or option value optional.
	tokenQuestion
	// tokenStar marks a catch-all name or a repeated option.
	tokenStar
	// tokenComma separates an option's long and short forms.
	tokenComma
	// tokenLongOption is a "--name" option form; value holds the name.
	tokenLongOption
	// tokenShortOption is a "-n" option form; value holds the character.
	tokenShortOption
	// tokenEndOfOptions is the standalone "--" segment.
	tokenEndOfOptions
	// tokenBreak is a run of whitespace separating segments.
	tokenBreak
	// tokenEnd marks the end of the pattern.
	tokenEnd
)

func (t tokenType) String() string {
	switch t {
	case tokenLiteral:
		return "literal"
	case tokenOpen:
		return "'{'"
	case tokenClose:
		return "'}'"
	case tokenColon:
		return "':'"
	case tokenQuestion:
		return "'?'"
	case tokenStar:
		return "'*'"
	case tokenComma:
		return "','"
	case tokenLongOption:
		return "long option"
	case tokenShortOption:
		return "short option"
	case tokenEndOfOptions:
		return "'--'"
	case tokenBreak:
		return "whitespace"
	case tokenEnd:
		return "end of pattern"
	}
	return "unknown"
}
