package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/token"
)

func TestRecorderLinesAndFlush(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, "fixed")

	ops := []token.Op{token.IncCell, token.MoveForward, token.IncCell, token.Output}
	for i, op := range ops {
		line := r.Record(op, scanner.Pos{Line: 1, Column: i + 1})
		if line != i+1 {
			t.Errorf("Record #%d returned line %d", i, line)
		}
	}

	if r.Lines() != len(ops) {
		t.Errorf("expected %d recorded lines, got %d", len(ops), r.Lines())
	}

	doc, err := r.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if doc.ID != "fixed" {
		t.Errorf("expected ID 'fixed', got %q", doc.ID)
	}
	if doc.Path != filepath.Join(dir, "bfsource-fixed.trace") {
		t.Errorf("unexpected path %q", doc.Path)
	}
	if doc.Lines != 4 {
		t.Errorf("expected 4 lines, got %d", doc.Lines)
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 trace lines, got %d: %q", len(lines), data)
	}
	if lines[0] != "IncCell\t1:1" || lines[3] != "Output\t1:4" {
		t.Errorf("unexpected trace lines %q", lines)
	}
}

func TestRecorderGeneratesUniqueIDs(t *testing.T) {
	a := NewRecorder("", "")
	b := NewRecorder("", "")
	if a.Path() == b.Path() || strings.HasSuffix(a.Path(), "bfsource-.trace") {
		t.Errorf("expected distinct generated IDs, got %q and %q", a.Path(), b.Path())
	}
}

func TestRecorderImplicitPosition(t *testing.T) {
	r := NewRecorder(t.TempDir(), "x")
	r.Record(token.LoopEnd, scanner.Pos{})
	doc, err := r.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	data, _ := os.ReadFile(doc.Path)
	if string(data) != "LoopEnd\timplicit\n" {
		t.Errorf("unexpected trace %q", data)
	}
}
