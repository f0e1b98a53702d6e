package route

import (
	"reflect"
	"testing"
)

func TestNewInputFindsTerminator(t *testing.T) {
	in := NewInput([]string{"run", "--", "echo", "--", "hi"})
	if in.Terminator != 1 {
		t.Errorf("expected terminator at 1, got %d", in.Terminator)
	}

	in = NewInput([]string{"run", "echo"})
	if in.Terminator != -1 {
		t.Errorf("expected no terminator, got %d", in.Terminator)
	}
}

func TestOptionScanEnd(t *testing.T) {
	in := NewInput([]string{"run", "--force", "--", "--not-an-option"})
	if got := in.optionScanEnd(); got != 2 {
		t.Errorf("expected scan end 2, got %d", got)
	}

	in = NewInput([]string{"run", "--force"})
	if got := in.optionScanEnd(); got != 2 {
		t.Errorf("expected scan end 2, got %d", got)
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"deploy prod -f", []string{"deploy", "prod", "-f"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{`greet "Alice Smith"`, []string{"greet", "Alice Smith"}},
		{`greet 'Alice Smith'`, []string{"greet", "Alice Smith"}},
		{`say "she said \"hi\""`, []string{"say", `she said "hi"`}},
		{`path a\ b`, []string{"path", "a b"}},
		{`mix "a"'b'c`, []string{"mix", "abc"}},
		{`empty ""`, []string{"empty", ""}},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := SplitLine(tt.line)
		if err != nil {
			t.Fatalf("SplitLine(%q): %v", tt.line, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLine(%q): expected %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestSplitLineErrors(t *testing.T) {
	for _, line := range []string{`greet "Alice`, `greet 'Alice`, `greet Alice\`} {
		if _, err := SplitLine(line); err == nil {
			t.Errorf("SplitLine(%q): expected an error", line)
		}
	}
}
