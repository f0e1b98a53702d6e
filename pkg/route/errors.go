package route

import (
	"fmt"
	"strings"
)

// Stage identifies the compilation stage that produced an error.
type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageRegister Stage = "register"
)

// PatternError is a structured compile-time error with an error code,
// the offending pattern, and a byte offset into it.
type PatternError struct {
	// Code is a unique error identifier (e.g. "R110").
	Code string

	// Stage is the compilation stage that failed.
	Stage Stage

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Pattern is the route pattern being compiled.
	Pattern string

	// Offset is the byte offset into Pattern where the error occurred,
	// or -1 when the error is not tied to a position.
	Offset int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	var sb strings.Builder
	if e.Code != "" {
		sb.WriteString(e.Code)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(&sb, " (offset %d)", e.Offset)
	}
	return sb.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *PatternError) Unwrap() error {
	return e.Wrapped
}

// WithOffset records the byte offset where the error occurred.
func (e *PatternError) WithOffset(offset int) *PatternError {
	e.Offset = offset
	return e
}

// WithPattern records the pattern being compiled.
func (e *PatternError) WithPattern(pattern string) *PatternError {
	e.Pattern = pattern
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *PatternError) WithSuggestion(s string) *PatternError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *PatternError) WithDetail(format string, args ...any) *PatternError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *PatternError) Wrap(err error) *PatternError {
	e.Wrapped = err
	return e
}

// errorTemplate defines a registered error type.
type errorTemplate struct {
	Stage   Stage
	Message string
}

// errorRegistry maps error codes to their templates.
//
// R1xx are lexer errors, R2xx parser errors, R3xx validation errors,
// R4xx registration errors.
var errorRegistry = map[string]errorTemplate{
	"R100": {StageLex, "unexpected character"},
	"R101": {StageLex, "short option must be a single character"},
	"R102": {StageLex, "option is missing a name"},

	"R200": {StageParse, "unterminated parameter"},
	"R201": {StageParse, "unexpected token"},
	"R202": {StageParse, "empty parameter"},
	"R203": {StageParse, "whitespace inside parameter"},
	"R204": {StageParse, "missing short form after comma"},

	"R300": {StageValidate, "invalid identifier"},
	"R301": {StageValidate, "unknown type constraint"},
	"R302": {StageValidate, "catch-all must be the final positional segment"},
	"R303": {StageValidate, "duplicate catch-all"},
	"R304": {StageValidate, "option must declare a long or short form"},
	"R305": {StageValidate, "required parameter after optional parameter"},
	"R306": {StageValidate, "duplicate binding name"},

	"R400": {StageRegister, "route set is frozen"},
}

// newError creates a PatternError from a registered error code.
func newError(code string) *PatternError {
	t, ok := errorRegistry[code]
	if !ok {
		return &PatternError{Code: code, Message: "unknown error", Offset: -1}
	}
	return &PatternError{
		Code:    code,
		Stage:   t.Stage,
		Message: t.Message,
		Offset:  -1,
	}
}

// MultiError aggregates several pattern errors, typically from
// compiling a whole manifest of routes.
type MultiError struct {
	Errors []*PatternError
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d pattern errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// FormatError renders a PatternError for terminal display, pointing a
// caret at the offending offset:
//
//	R200: unterminated parameter
//	  deploy {env
//	         ^
func FormatError(err *PatternError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteByte('\n')
	if err.Pattern != "" {
		fmt.Fprintf(&sb, "  %s\n", err.Pattern)
		if err.Offset >= 0 && err.Offset <= len(err.Pattern) {
			fmt.Fprintf(&sb, "  %s^\n", strings.Repeat(" ", err.Offset))
		}
	}
	if err.Detail != "" {
		fmt.Fprintf(&sb, "  %s\n", err.Detail)
	}
	if err.Suggestion != "" {
		fmt.Fprintf(&sb, "  hint: %s\n", err.Suggestion)
	}
	return sb.String()
}
