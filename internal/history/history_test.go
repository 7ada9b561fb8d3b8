package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

func TestStackUndoRedo(t *testing.T) {
	v1 := []*model.ListItem{{ID: "a", Text: "one"}}
	v2 := []*model.ListItem{{ID: "a", Text: "two"}}
	v3 := []*model.ListItem{{ID: "a", Text: "three"}}

	s := NewStack(0)
	s.Push("edit text", v1)
	s.Push("edit text again", v2)

	snap, ok := s.Undo(v3)
	if !ok || snap.Items[0].Text != "two" || snap.Label != "edit text again" {
		t.Fatalf("Expected to undo to 'two', got %+v", snap)
	}
	snap, _ = s.Undo(snap.Items)
	if snap.Items[0].Text != "one" {
		t.Fatalf("Expected to undo to 'one', got '%s'", snap.Items[0].Text)
	}
	if s.CanUndo() {
		t.Errorf("Expected nothing left to undo")
	}

	snap, ok = s.Redo(snap.Items)
	if !ok || snap.Items[0].Text != "two" {
		t.Fatalf("Expected to redo to 'two', got %+v", snap)
	}
	snap, _ = s.Redo(snap.Items)
	if snap.Items[0].Text != "three" {
		t.Fatalf("Expected to redo to 'three', got '%s'", snap.Items[0].Text)
	}
	if _, ok := s.Redo(snap.Items); ok {
		t.Errorf("Expected nothing left to redo")
	}
}

func TestPushClearsRedo(t *testing.T) {
	s := NewStack(0)
	s.Push("a", nil)
	s.Undo(nil)
	if !s.CanRedo() {
		t.Fatalf("Expected redo to be available")
	}

	s.Push("b", nil)

	if s.CanRedo() {
		t.Errorf("Expected a new edit to clear redo")
	}
}

func TestStackLimit(t *testing.T) {
	s := NewStack(2)
	for _, label := range []string{"1", "2", "3"} {
		s.Push(label, nil)
	}

	var labels []string
	for s.CanUndo() {
		snap, _ := s.Undo(nil)
		labels = append(labels, snap.Label)
	}

	if len(labels) != 2 || labels[0] != "3" || labels[1] != "2" {
		t.Errorf("Expected [3 2], got %v", labels)
	}
}

func TestInputNavigation(t *testing.T) {
	in := NewInput(10)
	in.Add("w")
	in.Add("set reveal_mode=by-section")
	in.Add("set reveal_mode=by-section")

	if got := len(in.Entries()); got != 2 {
		t.Fatalf("Expected 2 entries, got %d", got)
	}

	entry, _ := in.Previous("draft")
	if entry != "set reveal_mode=by-section" {
		t.Errorf("Expected newest entry first, got '%s'", entry)
	}
	entry, _ = in.Previous("ignored")
	if entry != "w" {
		t.Errorf("Expected 'w', got '%s'", entry)
	}
	entry, _ = in.Previous("ignored")
	if entry != "w" {
		t.Errorf("Expected to stay on the oldest entry, got '%s'", entry)
	}

	in.Next()
	entry, _ = in.Next()
	if entry != "draft" {
		t.Errorf("Expected the draft back, got '%s'", entry)
	}
	if in.IsNavigating() {
		t.Errorf("Expected navigation to end")
	}
}

func TestPersistentInput(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerInDir(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	in, _ := NewPersistentInput(2, m, "command.toml")
	in.Add("one")
	in.Add("two")
	in.Add("three")

	reloaded, err := NewPersistentInput(2, m, "command.toml")
	if err != nil {
		t.Fatalf("Failed to reload history: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 2 || entries[0] != "two" || entries[1] != "three" {
		t.Errorf("Expected [two three], got %v", entries)
	}
}

func TestCorruptHistoryFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "search.toml"), []byte("entries = [unterminated"), 0644)
	m, _ := NewManagerInDir(dir)

	entries, err := m.Load("search.toml")
	if err != nil || len(entries) != 0 {
		t.Errorf("Expected empty history for a corrupt file, got %v, %v", entries, err)
	}
}
