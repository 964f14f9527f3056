package policy

import (
	"testing"

	"github.com/mriley/hookguard/internal/hook"
)

func testDomain(level Level) *Domain {
	return &Domain{
		Name:        "test",
		AppliesTo:   shellOnly,
		Enforcement: level,
		Escape:      []Rule{rule(`--skip\b`, "explicit escape")},
		Safe:        []Rule{rule(`\bstatus\b`, "read-only")},
		Gated:       []Rule{rule(`\bdestroy\s+(\S+)`, "destroy is gated")},
		Exception:   []Rule{rule(`--bootstrap\b`, "bootstrap exception")},
	}
}

func shellInv(command string) hook.Invocation {
	return hook.Invocation{Kind: hook.OpShellCommand, Command: command}
}

func TestClassifyPrecedence(t *testing.T) {
	d := testDomain(LevelBlock)

	tests := []struct {
		name    string
		command string
		want    Verdict
	}{
		{"escape beats gated", "destroy db --skip", Allow},
		{"safe beats gated", "status destroy x", Allow},
		{"gated blocks", "destroy db", Block},
		{"exception downgrades to warn", "destroy db --bootstrap", Warn},
		{"no rule matches defaults to allow", "build everything", Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := d.Classify(shellInv(tt.command))
			if dec.Verdict != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.command, dec.Verdict, tt.want)
			}
		})
	}
}

func TestClassifyWarnEnforcement(t *testing.T) {
	d := testDomain(LevelWarn)

	dec := d.Classify(shellInv("destroy db"))
	if dec.Verdict != Warn {
		t.Fatalf("warn-level domain: got %v, want %v", dec.Verdict, Warn)
	}
	if dec.Exception != nil {
		t.Error("enforcement warn should not set an exception rule")
	}
}

func TestClassifyTokenExtraction(t *testing.T) {
	d := testDomain(LevelBlock)

	dec := d.Classify(shellInv("destroy db"))
	if got := dec.Context["match"]; got != "db" {
		t.Errorf("Context[match] = %q, want %q", got, "db")
	}
}

func TestClassifyExceptionKeepsGatedContext(t *testing.T) {
	d := testDomain(LevelBlock)

	dec := d.Classify(shellInv("destroy db --bootstrap"))
	if dec.Rule == nil || dec.Rule.Explanation != "destroy is gated" {
		t.Errorf("exception decision should keep the gated rule, got %+v", dec.Rule)
	}
	if dec.Exception == nil || dec.Exception.Explanation != "bootstrap exception" {
		t.Errorf("exception rule not recorded, got %+v", dec.Exception)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	d := testDomain(LevelBlock)
	inv := shellInv("destroy db --bootstrap")

	first := d.Classify(inv)
	second := d.Classify(inv)
	if first.Verdict != second.Verdict || first.Context["match"] != second.Context["match"] {
		t.Errorf("repeated classification differs: %+v vs %+v", first, second)
	}
}
