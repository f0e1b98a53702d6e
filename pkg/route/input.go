package route

import (
	"fmt"
	"strings"
)

// ParsedInput is the tokenized form of one command-line invocation
// being resolved against a set of routes. It is created fresh per
// invocation and discarded after resolution.
type ParsedInput struct {
	// Args are the invocation's argument tokens, in order.
	Args []string

	// Terminator is the index in Args of the first explicit
	// end-of-options token ("--"), or -1 when none was given. Option
	// scanning never looks at or past this index; the marker itself is
	// never positional material.
	Terminator int
}

// NewInput tokenizes an argument slice, recording the position of an
// explicit end-of-options marker if one is present.
func NewInput(args []string) ParsedInput {
	in := ParsedInput{Args: args, Terminator: -1}
	for i, a := range args {
		if a == "--" {
			in.Terminator = i
			break
		}
	}
	return in
}

// optionScanEnd returns the exclusive upper bound for option scanning.
func (in ParsedInput) optionScanEnd() int {
	if in.Terminator >= 0 {
		return in.Terminator
	}
	return len(in.Args)
}

// SplitLine splits a raw command line into argument tokens, honoring
// single quotes, double quotes, and backslash escapes outside single
// quotes. This is a convenience for REPL-style callers that hold one
// string instead of an argv slice; it is not locale-aware.
func SplitLine(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inToken := false

	const (
		bare = iota
		single
		double
	)
	mode := bare

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch mode {
		case bare:
			switch c {
			case ' ', '\t':
				if inToken {
					args = append(args, cur.String())
					cur.Reset()
					inToken = false
				}
			case '\'':
				mode = single
				inToken = true
			case '"':
				mode = double
				inToken = true
			case '\\':
				if i+1 >= len(line) {
					return nil, fmt.Errorf("trailing backslash")
				}
				i++
				cur.WriteByte(line[i])
				inToken = true
			default:
				cur.WriteByte(c)
				inToken = true
			}
		case single:
			if c == '\'' {
				mode = bare
			} else {
				cur.WriteByte(c)
			}
		case double:
			switch c {
			case '"':
				mode = bare
			case '\\':
				if i+1 >= len(line) {
					return nil, fmt.Errorf("trailing backslash")
				}
				i++
				cur.WriteByte(line[i])
			default:
				cur.WriteByte(c)
			}
		}
	}

	if mode != bare {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
