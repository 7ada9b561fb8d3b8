package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/history"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(handle func(*tcell.EventKey), text string) {
	for _, r := range text {
		handle(runeKey(r))
	}
}

func TestEditorEditing(t *testing.T) {
	e := NewEditor("item_1", FieldText, "Plan")
	e.Start()

	typeText(func(ev *tcell.EventKey) { e.HandleKey(ev) }, " ahead")
	if e.GetText() != "Plan ahead" {
		t.Errorf("Expected 'Plan ahead', got %q", e.GetText())
	}

	e.HandleKey(key(tcell.KeyHome))
	e.HandleKey(key(tcell.KeyDelete))
	if e.GetText() != "lan ahead" || e.GetCursorPos() != 0 {
		t.Errorf("Expected 'lan ahead' at 0, got %q at %d", e.GetText(), e.GetCursorPos())
	}

	if e.HandleKey(key(tcell.KeyEnter)) {
		t.Errorf("Expected Enter to end editing")
	}
	if !e.Changed() {
		t.Errorf("Expected the editor to report a change")
	}
	if got := e.Cancel(); got != "Plan" {
		t.Errorf("Expected Cancel to return the original, got %q", got)
	}
}

func TestEditorMultibyte(t *testing.T) {
	e := NewEditor("item_1", FieldText, "café")
	e.Start()
	e.HandleKey(key(tcell.KeyBackspace2))
	if e.GetText() != "caf" {
		t.Errorf("Expected backspace to remove one rune, got %q", e.GetText())
	}
}

func TestEditorDetailNewline(t *testing.T) {
	detail := NewEditor("item_1", FieldDetail, "one")
	detail.Start()
	detail.HandleKey(key(tcell.KeyCtrlJ))
	typeText(func(ev *tcell.EventKey) { detail.HandleKey(ev) }, "two")
	if detail.GetText() != "one\ntwo" {
		t.Errorf("Expected a newline in the detail, got %q", detail.GetText())
	}

	text := NewEditor("item_1", FieldText, "one")
	text.Start()
	text.HandleKey(key(tcell.KeyCtrlJ))
	if text.GetText() != "one" {
		t.Errorf("Expected Ctrl+J to be ignored for text, got %q", text.GetText())
	}
}

func TestCommandModeHistory(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	typeText(func(ev *tcell.EventKey) { c.HandleKey(ev) }, "set reveal_mode=by-section")
	cmd, done := c.HandleKey(key(tcell.KeyEnter))
	if !done || cmd != "set reveal_mode=by-section" {
		t.Fatalf("Expected command, got %q done=%v", cmd, done)
	}
	if c.IsActive() {
		t.Errorf("Expected command mode to close")
	}

	c.Start()
	typeText(func(ev *tcell.EventKey) { c.HandleKey(ev) }, "w")
	c.HandleKey(key(tcell.KeyUp))
	if c.GetInput() != "set reveal_mode=by-section" {
		t.Errorf("Expected history entry, got %q", c.GetInput())
	}
	c.HandleKey(key(tcell.KeyDown))
	if c.GetInput() != "w" {
		t.Errorf("Expected draft back, got %q", c.GetInput())
	}
}

func TestCommandModeBackspaceOnEmptyCloses(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	cmd, done := c.HandleKey(key(tcell.KeyBackspace2))
	if !done || cmd != "" || c.IsActive() {
		t.Errorf("Expected empty backspace to cancel, got %q done=%v", cmd, done)
	}
}

func TestCommandModePersistentHistory(t *testing.T) {
	manager, err := history.NewManagerInDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerInDir failed: %v", err)
	}

	c := NewCommandModeWithHistory(manager)
	c.Start()
	typeText(func(ev *tcell.EventKey) { c.HandleKey(ev) }, "w")
	c.HandleKey(key(tcell.KeyEnter))

	again := NewCommandModeWithHistory(manager)
	if got := again.History(); len(got) != 1 || got[0] != "w" {
		t.Errorf("Expected persisted history [w], got %v", got)
	}
}

func TestSearchMatches(t *testing.T) {
	items := testTree()
	done := model.NewItem("Ship it")
	done.ID = "done"
	done.PrimaryIcon = &model.IconRef{SetID: "status", IconID: "done"}
	items = append(items, done)

	s := NewSearch()
	s.Start(items)
	typeText(func(ev *tcell.EventKey) { s.HandleKey(ev) }, "the")
	if s.GetMatchCount() != 2 {
		t.Fatalf("Expected 2 matches for 'the', got %d", s.GetMatchCount())
	}
	if !s.HandleKey(key(tcell.KeyEnter)) {
		t.Fatalf("Expected Enter with matches to report true")
	}
	if id, _ := s.CurrentMatch(); id != "parent" {
		t.Errorf("Expected first match parent, got %s", id)
	}
	s.NextMatch()
	if id, _ := s.CurrentMatch(); id != "child2" {
		t.Errorf("Expected second match child2, got %s", id)
	}
	s.NextMatch()
	if id, _ := s.CurrentMatch(); id != "parent" {
		t.Errorf("Expected wrap to parent, got %s", id)
	}

	s.Start(items)
	typeText(func(ev *tcell.EventKey) { s.HandleKey(ev) }, "s:done")
	if s.GetMatchCount() != 1 || !s.IsMatch("done") {
		t.Errorf("Expected status search to find done, got %d matches", s.GetMatchCount())
	}

	s.Start(items)
	typeText(func(ev *tcell.EventKey) { s.HandleKey(ev) }, `"open`)
	if s.GetParseError() == "" {
		t.Errorf("Expected a parse error for an unterminated quote")
	}
}
