package diffutil

import (
	"strings"
	"testing"
)

func TestUnifiedIdenticalContent(t *testing.T) {
	lines := Lines("int main() {}\n")
	diff, err := Unified("a.c", lines, lines)
	if err != nil {
		t.Fatalf("Unified() error = %v", err)
	}
	if diff != nil {
		t.Errorf("Unified() = %v, want nil for identical content", diff)
	}
}

func TestUnifiedLabels(t *testing.T) {
	diff, err := Unified("src/a.c", Lines("old\n"), Lines("new\n"))
	if err != nil {
		t.Fatalf("Unified() error = %v", err)
	}
	if len(diff) < 2 {
		t.Fatalf("Unified() returned %d lines, want at least 2", len(diff))
	}

	wantFrom := "--- src/a.c\t(original)"
	wantTo := "+++ src/a.c\t(reformatted)"
	if diff[0] != wantFrom {
		t.Errorf("diff[0] = %q, want %q", diff[0], wantFrom)
	}
	if diff[1] != wantTo {
		t.Errorf("diff[1] = %q, want %q", diff[1], wantTo)
	}
}

func TestUnifiedChangedLines(t *testing.T) {
	original := Lines("int  x ;\nint y;\n")
	reformatted := Lines("int x;\nint y;\n")

	diff, err := Unified("a.c", original, reformatted)
	if err != nil {
		t.Fatalf("Unified() error = %v", err)
	}

	var removed, added bool
	for _, line := range diff {
		if line == "-int  x ;" {
			removed = true
		}
		if line == "+int x;" {
			added = true
		}
		if strings.HasSuffix(line, "\n") {
			t.Errorf("line %q carries a trailing newline", line)
		}
	}
	if !removed || !added {
		t.Errorf("diff = %q, want a -int  x ; and a +int x; line", diff)
	}
}

func TestLines(t *testing.T) {
	got := Lines("a\nb")
	if len(got) != 2 || got[0] != "a\n" || got[1] != "b\n" {
		t.Errorf("Lines(%q) = %q, want [a\\n b\\n]", "a\nb", got)
	}
}
