package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/socket"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
)

func newTestApp(t *testing.T, cfg *config.Config, items ...*model.ListItem) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.json")
	doc := model.NewDocument("Test")
	doc.Items = items
	if cfg == nil {
		cfg = config.Default()
	}
	return newApp(doc, storage.NewStore(path), Options{FilePath: path, Config: cfg, Registry: iconset.Builtin()})
}

func press(a *App, keys string) {
	for _, r := range keys {
		a.handleRawEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressKey(a *App, key tcell.Key) {
	a.handleRawEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func texts(items []*model.ListItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "save",
			expected: []string{"save"},
		},
		{
			name:     "command with arguments",
			input:    "open file.txt",
			expected: []string{"open", "file.txt"},
		},
		{
			name:     "double quoted string",
			input:    `export markdown "my file.md"`,
			expected: []string{"export", "markdown", "my file.md"},
		},
		{
			name:     "single quoted string",
			input:    "export markdown 'my file.md'",
			expected: []string{"export", "markdown", "my file.md"},
		},
		{
			name:     "mixed quotes",
			input:    `title "Hello World" and more`,
			expected: []string{"title", "Hello World", "and", "more"},
		},
		{
			name:     "escaped quotes",
			input:    `attr add key "value with \"quotes\""`,
			expected: []string{"attr", "add", "key", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `path "C:\\Users\\test"`,
			expected: []string{"path", `C:\Users\test`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty quoted string",
			input:    `command ""`,
			expected: []string{"command", ""},
		},
		{
			name:     "quoted string with special characters",
			input:    `attr add url "https://example.com/path?query=value&other=123"`,
			expected: []string{"attr", "add", "url", "https://example.com/path?query=value&other=123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommand(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d parts, got %d. Input: %q", len(tt.expected), len(result), tt.input)
				return
			}
			for i, part := range result {
				if part != tt.expected[i] {
					t.Errorf("Part %d: expected %q, got %q. Input: %q", i, tt.expected[i], part, tt.input)
				}
			}
		})
	}
}

func TestSaveWritesSessionItems(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("First"), model.NewItem("Second"))

	press(app, "o")
	if app.mode != InsertMode {
		t.Fatalf("Expected INSERT mode after o, got %s", app.mode)
	}
	press(app, "New Item")
	pressKey(app, tcell.KeyEnter)

	if err := app.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if app.dirty {
		t.Errorf("Expected clean state after save")
	}

	loaded, err := app.store.Load()
	if err != nil {
		t.Fatalf("Failed to load list: %v", err)
	}
	got := strings.Join(texts(loaded.Items), ",")
	if got != "First,New Item,Second" {
		t.Errorf("Expected First,New Item,Second after reload, got %s", got)
	}
}

func TestChangeItemWithChildrenPreservesChildren(t *testing.T) {
	parent := model.NewItem("Parent")
	parent.Children = []*model.ListItem{model.NewItem("Child 1"), model.NewItem("Child 2")}
	app := newTestApp(t, nil, parent)

	press(app, "c")
	pressKey(app, tcell.KeyEscape)

	items := app.session.Items()
	if len(items) != 1 {
		t.Fatalf("Expected parent to survive, got %d root items", len(items))
	}
	if items[0].Text != "" {
		t.Errorf("Expected cleared text, got %q", items[0].Text)
	}
	if len(items[0].Children) != 2 {
		t.Errorf("Expected 2 children, got %d", len(items[0].Children))
	}
}

func TestChangeEmptyItemWithoutChildrenIsDeleted(t *testing.T) {
	first := model.NewItem("First")
	app := newTestApp(t, nil, first, model.NewItem("Empty me"))

	press(app, "j")
	press(app, "c")
	pressKey(app, tcell.KeyEscape)

	items := app.session.Items()
	if len(items) != 1 || items[0].ID != first.ID {
		t.Fatalf("Expected only First to remain, got %v", texts(items))
	}
	if app.list.SelectedID() != first.ID {
		t.Errorf("Expected focus to move to the previous sibling")
	}
}

func TestDeleteRefusesItemsWithText(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("Keep"))

	press(app, "d")

	if len(app.session.Items()) != 1 {
		t.Errorf("Expected item with text to be kept")
	}
}

func TestEditDescriptionAndDetail(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("Item"))

	press(app, "e")
	press(app, "why")
	pressKey(app, tcell.KeyEnter)

	press(app, "E")
	press(app, "line one")
	app.handleRawEvent(tcell.NewEventKey(tcell.KeyCtrlJ, 0, tcell.ModCtrl))
	press(app, "line two")
	pressKey(app, tcell.KeyEnter)

	item := app.session.Items()[0]
	if item.Description != "why" {
		t.Errorf("Expected description 'why', got %q", item.Description)
	}
	if item.Detail != "line one\nline two" {
		t.Errorf("Expected two-line detail, got %q", item.Detail)
	}

	pressKey(app, tcell.KeyEnter)
	if app.session.ExpandedDetail() != item.ID {
		t.Errorf("Expected Enter to open the detail")
	}
}

func TestCycleStatusUndoRedo(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("Task"))

	press(app, "s")
	item := app.session.Items()[0]
	if item.Status() != "done" {
		t.Fatalf("Expected status done, got %q", item.Status())
	}

	press(app, "u")
	if got := app.session.Items()[0].Status(); got != "" {
		t.Errorf("Expected no status after undo, got %q", got)
	}

	pressKey(app, tcell.KeyCtrlR)
	if got := app.session.Items()[0].Status(); got != "done" {
		t.Errorf("Expected done after redo, got %q", got)
	}
}

func TestReadOnlyRejectsEdits(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("Task"))
	app.store.ReadOnly = true

	press(app, "s")

	if got := app.session.Items()[0].Status(); got != "" {
		t.Errorf("Expected read-only list to be unchanged, got status %q", got)
	}
	if !app.statusError {
		t.Errorf("Expected an error status")
	}
	if err := app.Save(); err == nil {
		t.Errorf("Expected save to fail when read-only")
	}
}

func TestMoveTopLevel(t *testing.T) {
	a := model.NewItem("A")
	a.Children = []*model.ListItem{model.NewItem("A1")}
	app := newTestApp(t, nil, a, model.NewItem("B"))

	press(app, "j")
	press(app, "J")

	if got := strings.Join(texts(app.session.Items()), ","); got != "B,A" {
		t.Errorf("Expected B,A, got %s", got)
	}
}

func TestCollapseKeys(t *testing.T) {
	parent := model.NewItem("Parent")
	parent.Children = []*model.ListItem{model.NewItem("Child")}
	app := newTestApp(t, nil, parent)

	if n := len(app.list.Rows()); n != 2 {
		t.Fatalf("Expected 2 rows, got %d", n)
	}
	press(app, "h")
	if n := len(app.list.Rows()); n != 1 {
		t.Errorf("Expected 1 row after collapse, got %d", n)
	}
	press(app, "zR")
	if n := len(app.list.Rows()); n != 2 {
		t.Errorf("Expected 2 rows after zR, got %d", n)
	}
}

func TestSetCommand(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("A"))

	app.handleCommand("set show_numbering=true")
	if !app.session.Config().ShowNumbering {
		t.Fatalf("Expected numbering on")
	}
	if row := app.list.Rows()[0]; row.NumberLabel != "1." {
		t.Errorf("Expected number 1., got %q", row.NumberLabel)
	}

	app.handleCommand("set show_numbering maybe")
	if !app.statusError {
		t.Errorf("Expected an error for a bad boolean")
	}
	if !app.session.Config().ShowNumbering {
		t.Errorf("Expected numbering to stay on after a bad value")
	}

	app.handleCommand("filter done")
	if got := app.session.Config().FilterByStatuses; len(got) != 1 || got[0] != "done" {
		t.Errorf("Expected filter [done], got %v", got)
	}
}

func TestStatusAndOnlyCommands(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("A"), model.NewItem("B"))

	app.handleCommand("status blocked")
	if got := app.session.Items()[0].Status(); got != "blocked" {
		t.Fatalf("Expected blocked, got %q", got)
	}

	app.handleCommand("status nope")
	if !app.statusError {
		t.Errorf("Expected an error for an unknown status")
	}

	app.handleCommand("only blocked")
	items := app.session.Items()
	if !items[0].IsVisible() || items[1].IsVisible() {
		t.Errorf("Expected only the blocked item to stay visible")
	}

	app.handleCommand("showall")
	if !app.session.Items()[1].IsVisible() {
		t.Errorf("Expected showall to restore visibility")
	}
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("A"))
	press(app, "s")

	app.handleCommand("q")
	if app.quit {
		t.Errorf("Expected :q to refuse with unsaved changes")
	}
	app.handleCommand("q!")
	if !app.quit {
		t.Errorf("Expected :q! to quit")
	}
}

func TestExportAndImportCommands(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("A"))
	dir := t.TempDir()

	out := filepath.Join(dir, "out.md")
	app.handleCommand(`export "` + out + `"`)
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected export file: %v", err)
	}
	if !strings.Contains(string(data), "A") {
		t.Errorf("Expected exported text, got %q", data)
	}

	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte("B\n  B1\nC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app.handleCommand("import " + in)
	if got := strings.Join(texts(app.session.Items()), ","); got != "A,B,C" {
		t.Errorf("Expected A,B,C after import, got %s", got)
	}

	press(app, "u")
	if got := strings.Join(texts(app.session.Items()), ","); got != "A" {
		t.Errorf("Expected import to be undoable, got %s", got)
	}
}

func presentConfig(mode model.RevealMode) *config.Config {
	cfg := config.Default()
	cfg.List.RevealMode = mode
	return cfg
}

func TestPresentModeSteps(t *testing.T) {
	a, b := model.NewItem("A"), model.NewItem("B")
	app := newTestApp(t, presentConfig(model.RevealOneByOneAccumulate), a, b)

	press(app, "p")
	if app.mode != PresentMode {
		t.Fatalf("Expected PRESENT mode, got %s", app.mode)
	}
	reveal := app.session.Reveal()
	if !reveal.IsRevealed(a.ID) || reveal.IsRevealed(b.ID) {
		t.Fatalf("Expected only A revealed at step 0")
	}

	press(app, " ")
	if !app.session.Reveal().IsRevealed(b.ID) {
		t.Errorf("Expected B revealed after space")
	}
	if app.list.SelectedID() != b.ID {
		t.Errorf("Expected selection to follow the focused item")
	}

	pressKey(app, tcell.KeyEscape)
	if app.mode != EditMode {
		t.Errorf("Expected EDIT mode after Esc, got %s", app.mode)
	}
	if !app.session.Reveal().IsRevealed(b.ID) {
		t.Errorf("Expected everything revealed while editing")
	}
}

func TestSocketStepAndState(t *testing.T) {
	app := newTestApp(t, presentConfig(model.RevealOneByOneFocus), model.NewItem("A"), model.NewItem("B"))
	app.setMode(PresentMode)

	msg := socket.Message{Command: socket.CommandNext, ResponseChan: make(chan *socket.Response, 1)}
	app.handleSocketMessage(msg)
	resp := <-msg.ResponseChan
	if !resp.Success || resp.Step != 1 || resp.MaxStep != 1 {
		t.Errorf("Expected step 1 of 1, got %+v", resp)
	}

	msg = socket.Message{Command: socket.CommandState, ResponseChan: make(chan *socket.Response, 1)}
	app.handleSocketMessage(msg)
	if resp := <-msg.ResponseChan; resp.FocusedID != app.session.Items()[1].ID {
		t.Errorf("Expected B focused, got %q", resp.FocusedID)
	}
}

func TestSocketRevealOverride(t *testing.T) {
	a, b := model.NewItem("A"), model.NewItem("B")
	app := newTestApp(t, nil, a, b)
	app.setMode(PresentMode)

	app.handleSocketMessage(socket.Message{Command: socket.CommandReveal, FocusedID: b.ID, RevealedIDs: []string{b.ID}})
	reveal := app.session.Reveal()
	if reveal.IsRevealed(a.ID) || !reveal.IsRevealed(b.ID) || !reveal.IsFocused(b.ID) {
		t.Errorf("Expected only B revealed and focused under the override")
	}

	app.handleSocketMessage(socket.Message{Command: socket.CommandRelease})
	if app.session.Machine().Overridden() {
		t.Errorf("Expected release to drop the override")
	}
}

func TestSocketAddItem(t *testing.T) {
	first := model.NewItem("First")
	app := newTestApp(t, nil, first, model.NewItem("Last"))

	app.handleSocketMessage(socket.Message{Command: socket.CommandAddItem, Text: "Appended", Status: "todo"})
	app.handleSocketMessage(socket.Message{Command: socket.CommandAddItem, Text: "Inserted", Target: first.ID})

	items := app.session.Items()
	if got := strings.Join(texts(items), ","); got != "First,Inserted,Last,Appended" {
		t.Fatalf("Expected First,Inserted,Last,Appended, got %s", got)
	}
	if items[3].Status() != "todo" {
		t.Errorf("Expected todo status, got %q", items[3].Status())
	}

	app.handleSocketMessage(socket.Message{Command: socket.CommandAddItem, Text: "Bad", Status: "nope"})
	if len(app.session.Items()) != 4 {
		t.Errorf("Expected unknown status to be rejected")
	}
}

func TestSearchSelectsMatchInCollapsedParent(t *testing.T) {
	parent := model.NewItem("Parent")
	child := model.NewItem("needle")
	parent.Children = []*model.ListItem{child}
	app := newTestApp(t, nil, parent)
	press(app, "h")

	press(app, "/needle")
	pressKey(app, tcell.KeyEnter)

	if app.list.SelectedID() != child.ID {
		t.Errorf("Expected the match to be selected")
	}
	if app.session.Collapsed().IsCollapsed(parent.ID) {
		t.Errorf("Expected the parent to be expanded")
	}
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	app := newTestApp(t, nil, model.NewItem("A"))
	if err := app.Save(); err != nil {
		t.Fatal(err)
	}

	doc := model.NewDocument("Test")
	doc.Items = []*model.ListItem{model.NewItem("From disk")}
	if err := storage.NewStore(app.store.FilePath).Save(doc); err != nil {
		t.Fatal(err)
	}

	app.reloadFromDisk()
	if got := strings.Join(texts(app.session.Items()), ","); got != "From disk" {
		t.Errorf("Expected reloaded items, got %s", got)
	}

	press(app, "s")
	doc.Items = []*model.ListItem{model.NewItem("Again")}
	if err := storage.NewStore(app.store.FilePath).Save(doc); err != nil {
		t.Fatal(err)
	}
	app.reloadFromDisk()
	if got := strings.Join(texts(app.session.Items()), ","); got != "From disk" {
		t.Errorf("Expected local edits to block the reload, got %s", got)
	}
}

func TestExternalEditIsOneUndoStep(t *testing.T) {
	src := filepath.Join(t.TempDir(), "edited.md")
	content := "+++\ntext = \"Renamed\"\nstatus = \"done\"\nvisible = true\n+++\nNotes\n"
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Set("editor", "cp "+src)
	app := newTestApp(t, cfg, model.NewItem("Task"))

	press(app, "X")

	item := app.session.Items()[0]
	if item.Text != "Renamed" || item.Status() != "done" || item.Detail != "Notes" {
		t.Fatalf("Unexpected item after external edit: %+v", item)
	}

	press(app, "u")
	item = app.session.Items()[0]
	if item.Text != "Task" || item.Status() != "" || item.Detail != "" {
		t.Errorf("Expected one undo to restore the item, got %+v", item)
	}
}

func TestSplashAndOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.json")
	doc := model.NewDocument("Other")
	doc.Items = []*model.ListItem{model.NewItem("From disk")}
	if err := storage.NewStore(path).Save(doc); err != nil {
		t.Fatal(err)
	}

	app := newApp(model.NewDocument(""), storage.NewStore(""), Options{Config: config.Default(), Registry: iconset.Builtin()})
	if !app.splash.IsVisible() {
		t.Fatalf("Expected the splash screen without a file")
	}

	press(app, "s")
	if app.splash.IsVisible() {
		t.Errorf("Expected a key press to hide the splash screen")
	}

	app.handleCommand("e " + path)
	if !app.statusError {
		t.Errorf("Expected :e to refuse with unsaved changes")
	}

	app.handleCommand("e! " + path)
	if got := texts(app.session.Items()); len(got) != 1 || got[0] != "From disk" {
		t.Fatalf("Expected the opened list, got %v", got)
	}
	if app.dirty || app.store.FilePath != path || app.undo.CanUndo() {
		t.Errorf("Expected a clean session for %s", path)
	}
}

func TestHideAllAndShowAll(t *testing.T) {
	header := model.NewHeader("Intro")
	app := newTestApp(t, nil, header, model.NewItem("One"), model.NewItem("Two"))

	press(app, "H")
	for _, item := range app.session.Items() {
		if !item.IsHeader && item.IsVisible() {
			t.Errorf("Expected %q hidden", item.Text)
		}
	}
	if app.statusMsg != "All items hidden" {
		t.Errorf("Expected hide message, got %q", app.statusMsg)
	}

	app.handleCommand("showall")
	for _, item := range app.session.Items() {
		if !item.IsVisible() {
			t.Errorf("Expected %q shown", item.Text)
		}
	}
	if app.statusMsg != "All items shown" {
		t.Errorf("Expected show message, got %q", app.statusMsg)
	}
}
