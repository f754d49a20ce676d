package scanner

import (
	"testing"

	"nickandperla.net/bf/internal/token"
)

func collect(t *testing.T, src string) []*Item {
	t.Helper()
	s := NewFromString(src)
	var items []*Item
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if item.EOF() {
			return items
		}
		items = append(items, item)
	}
}

func TestScanSkipsNoOps(t *testing.T) {
	items := collect(t, "a+b-c [ > ] comment .,<")
	want := []token.Op{
		token.IncCell, token.DecCell, token.LoopStart, token.MoveForward,
		token.LoopEnd, token.Output, token.Input, token.MoveBackward,
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, op := range want {
		if items[i].Op != op {
			t.Errorf("item %d: expected %v, got %v", i, op, items[i].Op)
		}
	}
}

func TestScanPositions(t *testing.T) {
	items := collect(t, "+x+\n  [\n]")
	tests := []Pos{
		{Line: 1, Column: 1},
		{Line: 1, Column: 3},
		{Line: 2, Column: 3},
		{Line: 3, Column: 1},
	}
	if len(items) != len(tests) {
		t.Fatalf("expected %d items, got %d", len(tests), len(items))
	}
	for i, want := range tests {
		if items[i].Pos != want {
			t.Errorf("item %d: pos = %v; want %v", i, items[i].Pos, want)
		}
	}
}

func TestEmptySource(t *testing.T) {
	if items := collect(t, ""); len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
	if items := collect(t, "just a comment\n"); len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestPosString(t *testing.T) {
	if got := (Pos{Line: 2, Column: 7}).String(); got != "2:7" {
		t.Errorf("expected 2:7, got %s", got)
	}
	if got := (Pos{}).String(); got != "implicit" {
		t.Errorf("expected implicit, got %s", got)
	}
}
