package route

import "testing"

// mustParse compiles with the default converter registry and fails the
// test on error.
func mustParse(t *testing.T, pattern string) []Segment {
	t.Helper()
	r, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return r.Segments()
}

// parseError compiles and demands a *PatternError with the given code.
func parseError(t *testing.T, pattern, code string) *PatternError {
	t.Helper()
	_, err := Compile(pattern)
	if err == nil {
		t.Fatalf("Compile(%q): expected error %s, got none", pattern, code)
	}
	perr, ok := err.(*PatternError)
	if !ok {
		t.Fatalf("Compile(%q): expected *PatternError, got %T", pattern, err)
	}
	if perr.Code != code {
		t.Fatalf("Compile(%q): expected %s, got %s (%s)", pattern, code, perr.Code, perr.Message)
	}
	return perr
}

func TestParseParameterVariants(t *testing.T) {
	tests := []struct {
		pattern string
		want    Segment
	}{
		{"{env}", Segment{Kind: SegmentParameter, Name: "env"}},
		{"{file?}", Segment{Kind: SegmentParameter, Name: "file", Optional: true}},
		{"{n:int}", Segment{Kind: SegmentParameter, Name: "n", TypeConstraint: "int"}},
		{"{file?:string}", Segment{Kind: SegmentParameter, Name: "file", Optional: true, TypeConstraint: "string"}},
		{"{*args}", Segment{Kind: SegmentCatchAll, Name: "args"}},
		{"{*rest:int}", Segment{Kind: SegmentCatchAll, Name: "rest", TypeConstraint: "int"}},
	}

	for _, tt := range tests {
		segs := mustParse(t, tt.pattern)
		if len(segs) != 1 {
			t.Fatalf("%q: expected 1 segment, got %d", tt.pattern, len(segs))
		}
		if segs[0] != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.pattern, tt.want, segs[0])
		}
	}
}

func TestParseOptionVariants(t *testing.T) {
	tests := []struct {
		pattern string
		want    Segment
	}{
		{"--force", Segment{Kind: SegmentOption, Long: "force"}},
		{"-f", Segment{Kind: SegmentOption, Short: "f"}},
		{"--force,-f", Segment{Kind: SegmentOption, Long: "force", Short: "f"}},
		{"--verbose?", Segment{Kind: SegmentOption, Long: "verbose", Optional: true}},
		{"--mode {m}", Segment{Kind: SegmentOption, Long: "mode", Name: "m", TakesValue: true}},
		{"--mode {m:int}", Segment{Kind: SegmentOption, Long: "mode", Name: "m", TakesValue: true, TypeConstraint: "int"}},
		{"--out?{dir?}", Segment{Kind: SegmentOption, Long: "out", Optional: true, Name: "dir", TakesValue: true, ValueOptional: true}},
		{"--env {e}*", Segment{Kind: SegmentOption, Long: "env", Name: "e", TakesValue: true, Repeated: true}},
	}

	for _, tt := range tests {
		segs := mustParse(t, tt.pattern)
		if len(segs) != 1 {
			t.Fatalf("%q: expected 1 segment, got %d", tt.pattern, len(segs))
		}
		if segs[0] != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.pattern, tt.want, segs[0])
		}
	}
}

func TestParseOptionValueSpecAcrossWhitespace(t *testing.T) {
	// "--mode {m}" and "--mode{m}" declare the same option.
	spaced := mustParse(t, "--mode {m}")
	adjacent := mustParse(t, "--mode{m}")
	if len(spaced) != 1 || len(adjacent) != 1 {
		t.Fatalf("expected 1 segment each, got %d and %d", len(spaced), len(adjacent))
	}
	if spaced[0] != adjacent[0] {
		t.Errorf("expected identical segments, got %+v and %+v", spaced[0], adjacent[0])
	}
}

func TestParseOptionBeforeCatchAllStaysFlag(t *testing.T) {
	// A catch-all group never becomes an option's value spec.
	segs := mustParse(t, "run --verbose {*cmd}")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[1].TakesValue {
		t.Error("expected --verbose to stay a flag")
	}
	if segs[2].Kind != SegmentCatchAll {
		t.Errorf("expected catch-all, got %s", segs[2].Kind)
	}
}

func TestParseFullPattern(t *testing.T) {
	segs := mustParse(t, "deploy {env} --force,-f {file?}")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	kinds := []SegmentKind{SegmentLiteral, SegmentParameter, SegmentOption}
	for i, k := range kinds {
		if segs[i].Kind != k {
			t.Errorf("segment %d: expected %s, got %s", i, k, segs[i].Kind)
		}
	}

	// The trailing brace group is the option's value spec, and the '?'
	// inside it makes the value optional.
	opt := segs[2]
	if opt.Long != "force" || opt.Short != "f" {
		t.Errorf("expected --force,-f, got %+v", opt)
	}
	if !opt.TakesValue || opt.Name != "file" || !opt.ValueOptional {
		t.Errorf("expected value spec {file?}, got %+v", opt)
	}
}

func TestParseEndOfOptionsSegment(t *testing.T) {
	segs := mustParse(t, "docker run --env {e}* -- {*cmd}")
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(segs))
	}
	if segs[3].Kind != SegmentEndOfOptions {
		t.Errorf("expected end-of-options segment, got %s", segs[3].Kind)
	}
	if segs[4].Kind != SegmentCatchAll || segs[4].Name != "cmd" {
		t.Errorf("expected catch-all cmd, got %+v", segs[4])
	}
}

// =============================================================================
// Syntax errors
// =============================================================================

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    string
	}{
		{"deploy {env", "R200"},
		{"deploy{env}", "R201"},
		{"{}", "R202"},
		{"{ env }", "R203"},
		{"--mode,", "R204"},
		{"--mode,{x}", "R204"},
	}

	for _, tt := range tests {
		parseError(t, tt.pattern, tt.code)
	}
}

func TestParseAdjacentSegmentsRejected(t *testing.T) {
	perr := parseError(t, "deploy{env}", "R201")
	if perr.Suggestion == "" {
		t.Error("expected a fix suggestion")
	}
}

func TestParseOptionalCatchAllRejected(t *testing.T) {
	// A catch-all already matches zero tokens.
	parseError(t, "{*args?}", "R201")
}

// =============================================================================
// Validation errors
// =============================================================================

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    string
	}{
		{"{9lives}", "R300"},
		{"{dry-run}", "R300"},
		{"--dry-run", "R300"},
		{"{env:color}", "R301"},
		{"{*a} {b}", "R302"},
		{"{*a} tail", "R302"},
		{"{*a} {*b}", "R303"},
		{"{a?} {b}", "R305"},
		{"{env} {env}", "R306"},
		{"--force --force", "R306"},
		{"--mode {m} {m}", "R306"},
		{"run -- --", "R201"},
	}

	for _, tt := range tests {
		parseError(t, tt.pattern, tt.code)
	}
}

func TestValidateOptionAfterCatchAllAllowed(t *testing.T) {
	// Options are not positional, so they may trail the catch-all.
	mustParse(t, "exec {*args} --verbose?")
}

func TestValidateOptionalParamThenLiteralAllowed(t *testing.T) {
	// Only required parameters are barred after an optional one.
	mustParse(t, "cp {src} {dst?} now")
}

func TestValidateUnicodeIdentifier(t *testing.T) {
	// Identifiers start with any letter, not only ASCII.
	mustParse(t, "{héllo}")
}

func TestParseErrorCarriesPattern(t *testing.T) {
	perr := parseError(t, "deploy {env", "R200")
	if perr.Pattern != "deploy {env" {
		t.Errorf("expected pattern on the error, got %q", perr.Pattern)
	}
	if perr.Offset != 7 {
		t.Errorf("expected offset 7 (the open brace), got %d", perr.Offset)
	}
}
