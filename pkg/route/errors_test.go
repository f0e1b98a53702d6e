package route

import (
	"strings"
	"testing"
)

func TestPatternErrorMessage(t *testing.T) {
	err := newError("R200").WithPattern("deploy {env").WithOffset(7)

	msg := err.Error()
	if !strings.Contains(msg, "R200") {
		t.Errorf("expected the code in the message, got %q", msg)
	}
	if !strings.Contains(msg, "offset 7") {
		t.Errorf("expected the offset in the message, got %q", msg)
	}
	if err.Stage != StageParse {
		t.Errorf("expected stage %s, got %s", StageParse, err.Stage)
	}
}

func TestFormatErrorPointsCaretAtOffset(t *testing.T) {
	err := newError("R200").WithPattern("deploy {env").WithOffset(7).
		WithSuggestion("add a closing '}'")

	out := FormatError(err)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %q", out)
	}
	if lines[1] != "  deploy {env" {
		t.Errorf("expected the pattern line, got %q", lines[1])
	}
	if lines[2] != "         ^" {
		t.Errorf("expected the caret under offset 7, got %q", lines[2])
	}
	if !strings.Contains(out, "hint: add a closing '}'") {
		t.Errorf("expected the suggestion, got %q", out)
	}
}

func TestMultiErrorMessage(t *testing.T) {
	merr := &MultiError{Errors: []*PatternError{
		newError("R200"),
		newError("R301"),
	}}
	msg := merr.Error()
	if !strings.Contains(msg, "2 pattern errors") {
		t.Errorf("expected a count header, got %q", msg)
	}
	if !strings.Contains(msg, "R301") {
		t.Errorf("expected each error listed, got %q", msg)
	}
}

func TestErrorCodesHaveStages(t *testing.T) {
	for code, tmpl := range errorRegistry {
		if tmpl.Stage == "" {
			t.Errorf("code %s has no stage", code)
		}
		if tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}
