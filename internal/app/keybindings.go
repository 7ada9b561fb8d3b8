package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/diff"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/ui"
	"github.com/sirupsen/logrus"
)

// KeyBinding represents a key binding with its description and handler.
// Special is used for non-rune keys such as Tab or Ctrl+R.
type KeyBinding struct {
	Key         rune
	Special     tcell.Key
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding as shown in help
func (kb KeyBinding) GetKey() string {
	if kb.Special != 0 {
		if name, ok := tcell.KeyNames[kb.Special]; ok {
			return name
		}
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb KeyBinding) GetDescription() string {
	return kb.Description
}

func (kb KeyBinding) matches(ev *tcell.EventKey) bool {
	if kb.Special != 0 {
		return ev.Key() == kb.Special
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == kb.Key
}

// PendingKeyBinding represents a pending key (like 'g' or 'z') that waits for a second key
type PendingKeyBinding struct {
	Prefix      rune
	Description string
	Sequences   map[rune]KeyBinding
}

// InitializeKeybindings sets up the key bindings of edit mode
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: 'j', Description: "Move down", Handler: func(app *App) { app.list.SelectNext() }},
		{Key: 'k', Description: "Move up", Handler: func(app *App) { app.list.SelectPrev() }},
		{Special: tcell.KeyDown, Description: "Move down", Handler: func(app *App) { app.list.SelectNext() }},
		{Special: tcell.KeyUp, Description: "Move up", Handler: func(app *App) { app.list.SelectPrev() }},
		{Key: 'G', Description: "Go to last item", Handler: func(app *App) { app.list.SelectLast() }},
		{Special: tcell.KeyCtrlD, Description: "Page down", Handler: func(app *App) { app.list.ScrollPageDown(app.pageSize()) }},
		{Special: tcell.KeyCtrlB, Description: "Page up", Handler: func(app *App) { app.list.ScrollPageUp(app.pageSize()) }},
		{Key: 'h', Description: "Collapse item or go to parent", Handler: (*App).collapseOrParent},
		{Key: 'l', Description: "Expand item", Handler: (*App).expandSelected},
		{Special: tcell.KeyLeft, Description: "Collapse item or go to parent", Handler: (*App).collapseOrParent},
		{Special: tcell.KeyRight, Description: "Expand item", Handler: (*App).expandSelected},
		{Special: tcell.KeyTab, Description: "Toggle collapse", Handler: (*App).toggleSelected},
		{Special: tcell.KeyEnter, Description: "Open or close detail", Handler: (*App).toggleDetail},
		{Key: 'i', Description: "Edit text", Handler: func(app *App) { app.startEdit(ui.FieldText, false) }},
		{Key: 'A', Description: "Append to text", Handler: func(app *App) { app.startEdit(ui.FieldText, false) }},
		{Key: 'c', Description: "Change text", Handler: func(app *App) { app.startEdit(ui.FieldText, true) }},
		{Key: 'e', Description: "Edit description", Handler: func(app *App) { app.startEdit(ui.FieldDescription, false) }},
		{Key: 'E', Description: "Edit detail", Handler: func(app *App) { app.startEdit(ui.FieldDetail, false) }},
		{Key: 'X', Description: "Edit item in $EDITOR", Handler: (*App).editExternal},
		{Key: 'o', Description: "New item after", Handler: func(app *App) { app.insertItem(false) }},
		{Key: 'a', Description: "New child item", Handler: func(app *App) { app.insertItem(true) }},
		{Key: 's', Description: "Cycle status", Handler: (*App).cycleStatus},
		{Key: 'v', Description: "Toggle visibility", Handler: (*App).toggleVisible},
		{Key: 'V', Description: "Show all items", Handler: func(app *App) { app.setAllVisible(true) }},
		{Key: 'H', Description: "Hide all items", Handler: func(app *App) { app.setAllVisible(false) }},
		{Key: 'd', Description: "Delete empty item", Handler: (*App).deleteSelected},
		{Key: 'J', Description: "Move top-level item down", Handler: func(app *App) { app.moveTopLevel(1) }},
		{Key: 'K', Description: "Move top-level item up", Handler: func(app *App) { app.moveTopLevel(-1) }},
		{Key: 'u', Description: "Undo", Handler: (*App).Undo},
		{Special: tcell.KeyCtrlR, Description: "Redo", Handler: (*App).Redo},
		{Key: 'p', Description: "Present", Handler: func(app *App) { app.setMode(PresentMode) }},
		{Key: '/', Description: "Search", Handler: func(app *App) { app.search.Start(app.session.Items()) }},
		{Key: 'n', Description: "Next match", Handler: func(app *App) {
			if app.search.NextMatch() {
				app.gotoCurrentMatch()
			}
		}},
		{Key: 'N', Description: "Previous match", Handler: func(app *App) {
			if app.search.PrevMatch() {
				app.gotoCurrentMatch()
			}
		}},
		{Key: ':', Description: "Command", Handler: func(app *App) { app.command.Start() }},
		{Key: '?', Description: "Toggle help", Handler: func(app *App) { app.help.Toggle() }},
		{Special: tcell.KeyCtrlS, Description: "Save", Handler: func(app *App) {
			if err := app.Save(); err != nil {
				app.SetError("Failed to save: " + err.Error())
			}
		}},
	}
}

// InitializePresentKeybindings sets up the key bindings of present mode.
// Stepping keys go to the disclosure machine before these are consulted.
func (a *App) InitializePresentKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: 'j', Description: "Move down", Handler: func(app *App) { app.list.SelectNext() }},
		{Key: 'k', Description: "Move up", Handler: func(app *App) { app.list.SelectPrev() }},
		{Special: tcell.KeyDown, Description: "Move down", Handler: func(app *App) { app.list.SelectNext() }},
		{Special: tcell.KeyUp, Description: "Move up", Handler: func(app *App) { app.list.SelectPrev() }},
		{Key: 'n', Description: "Next step", Handler: func(app *App) { app.step(true) }},
		{Key: 'b', Description: "Previous step", Handler: func(app *App) { app.step(false) }},
		{Key: 'r', Description: "Restart", Handler: func(app *App) {
			app.session.Machine().Reset()
			app.SetStatus("Restarted")
		}},
		{Special: tcell.KeyEnter, Description: "Open or close detail", Handler: (*App).toggleDetail},
		{Special: tcell.KeyTab, Description: "Toggle collapse", Handler: (*App).toggleSelected},
		{Key: 'p', Description: "Stop presenting", Handler: func(app *App) { app.setMode(EditMode) }},
		{Special: tcell.KeyEscape, Description: "Stop presenting", Handler: func(app *App) { app.setMode(EditMode) }},
		{Key: ':', Description: "Command", Handler: func(app *App) { app.command.Start() }},
		{Key: '?', Description: "Toggle help", Handler: func(app *App) { app.help.Toggle() }},
	}
}

// InitializePendingKeybindings sets up two-key sequences
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'g',
			Description: "Go to",
			Sequences: map[rune]KeyBinding{
				'g': {Key: 'g', Description: "Go to first item", Handler: func(app *App) { app.list.SelectFirst() }},
				'p': {Key: 'p', Description: "Go to parent", Handler: func(app *App) { app.list.SelectParent() }},
			},
		},
		{
			Prefix:      'z',
			Description: "Folds",
			Sequences: map[rune]KeyBinding{
				'M': {Key: 'M', Description: "Collapse all", Handler: func(app *App) {
					app.session.SetAllCollapsed(true)
					app.refresh()
				}},
				'R': {Key: 'R', Description: "Expand all", Handler: func(app *App) {
					app.session.SetAllCollapsed(false)
					app.refresh()
				}},
				'a': {Key: 'a', Description: "Toggle collapse", Handler: (*App).toggleSelected},
			},
		},
	}
}

func (a *App) helpSections() []ui.HelpSection {
	edit := make([]ui.KeyBindingInfo, 0, len(a.keybindings))
	for _, kb := range a.keybindings {
		edit = append(edit, kb)
	}
	for _, pkb := range a.pendingKeybindings {
		for _, seq := range pkb.Sequences {
			edit = append(edit, pendingInfo{prefix: pkb.Prefix, binding: seq})
		}
	}
	present := make([]ui.KeyBindingInfo, 0, len(a.presentKeybindings)+2)
	present = append(present, staticInfo{"Space/→", "Reveal next"}, staticInfo{"←", "Step back"})
	for _, kb := range a.presentKeybindings {
		present = append(present, kb)
	}
	return []ui.HelpSection{
		{Title: "Edit", Bindings: edit},
		{Title: "Present", Bindings: present},
	}
}

type pendingInfo struct {
	prefix  rune
	binding KeyBinding
}

func (p pendingInfo) GetKey() string         { return string(p.prefix) + p.binding.GetKey() }
func (p pendingInfo) GetDescription() string { return p.binding.Description }

type staticInfo struct{ key, description string }

func (s staticInfo) GetKey() string         { return s.key }
func (s staticInfo) GetDescription() string { return s.description }

// handleKeypress dispatches a key in edit or present mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.pendingKey != 0 {
		prefix := a.pendingKey
		a.pendingKey = 0
		for _, pkb := range a.pendingKeybindings {
			if pkb.Prefix != prefix {
				continue
			}
			if kb, ok := pkb.Sequences[ev.Rune()]; ok && ev.Key() == tcell.KeyRune {
				kb.Handler(a)
			}
			return
		}
		return
	}

	bindings := a.keybindings
	if a.mode == PresentMode {
		if a.session.Machine().HandleKey(ev) {
			a.followFocus()
			return
		}
		bindings = a.presentKeybindings
	} else if ev.Key() == tcell.KeyRune {
		for _, pkb := range a.pendingKeybindings {
			if pkb.Prefix == ev.Rune() {
				a.pendingKey = pkb.Prefix
				return
			}
		}
	}

	for _, kb := range bindings {
		if kb.matches(ev) {
			kb.Handler(a)
			return
		}
	}
}

func (a *App) pageSize() int {
	if a.screen == nil {
		return 10
	}
	if h := a.screen.GetHeight() - 3; h > 1 {
		return h
	}
	return 1
}

func (a *App) selectedItem() (*model.ListItem, bool) {
	row, ok := a.list.Selected()
	if !ok || row.Item == nil {
		return nil, false
	}
	return row.Item, true
}

// editExternal opens the selected item in the external editor and applies
// the result as one undoable change
func (a *App) editExternal() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if a.store.ReadOnly {
		a.SetError("Read-only: this is a backup")
		return
	}
	if a.screen != nil {
		if err := a.screen.Suspend(); err != nil {
			a.SetError("Failed to suspend screen: " + err.Error())
			return
		}
	}
	fields, changed, err := ui.EditItemInExternalEditor(item, ui.ResolveEditor(a.cfg), a.resolveStatus)
	if a.screen != nil {
		if rerr := a.screen.Resume(); rerr != nil {
			logrus.Errorf("Failed to resume screen: %v", rerr)
		}
	}
	switch {
	case err != nil:
		a.SetError(err.Error())
	case !changed:
		a.SetStatus("No changes")
	case a.edit("external edit", func() bool { return a.session.SetFields(item.ID, fields) }):
		a.SetStatus("Item updated")
	}
}

// resolveStatus maps an icon id of the configured icon set to a reference.
// "" and "none" clear the status.
func (a *App) resolveStatus(status string) (*model.IconRef, error) {
	if status == "" || status == "none" {
		return nil, nil
	}
	setID := a.session.Config().IconSetID
	if _, ok := a.session.Registry().Resolve(setID, status); !ok {
		return nil, fmt.Errorf("unknown status %q in icon set %q", status, setID)
	}
	return &model.IconRef{SetID: setID, IconID: status}, nil
}

func (a *App) collapseOrParent() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if item.HasChildren() && !a.session.Collapsed().IsCollapsed(item.ID) {
		a.session.ToggleCollapsed(item.ID)
		a.refresh()
		return
	}
	a.list.SelectParent()
}

func (a *App) expandSelected() {
	item, ok := a.selectedItem()
	if !ok || !item.HasChildren() || !a.session.Collapsed().IsCollapsed(item.ID) {
		return
	}
	a.session.ToggleCollapsed(item.ID)
	a.refresh()
}

func (a *App) toggleSelected() {
	item, ok := a.selectedItem()
	if !ok || !item.HasChildren() {
		return
	}
	a.session.ToggleCollapsed(item.ID)
	a.refresh()
}

func (a *App) toggleDetail() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if a.session.Config().DetailMode == model.DetailNone {
		a.SetStatus("Detail is disabled (:set detail_mode=inline)")
		return
	}
	if !item.HasDetail() {
		if a.mode == EditMode {
			a.startEdit(ui.FieldDetail, false)
		}
		return
	}
	a.session.ToggleDetail(item.ID)
}

func (a *App) insertItem(asChild bool) {
	item, ok := a.selectedItem()
	newItem := model.NewItem("")
	var inserted bool
	switch {
	case !ok:
		inserted = a.edit("new item", func() bool { return a.session.Append(newItem) })
	case asChild:
		inserted = a.edit("new child", func() bool { return a.session.InsertChild(item.ID, newItem) })
	default:
		inserted = a.edit("new item", func() bool { return a.session.InsertAfter(item.ID, newItem) })
	}
	if !inserted {
		return
	}
	a.list.SelectByID(newItem.ID)
	a.startEdit(ui.FieldText, false)
}

func (a *App) cycleStatus() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if a.edit("status", func() bool { return a.session.CycleStatus(item.ID) }) {
		if updated := model.FindItemByID(a.session.Items(), item.ID); updated != nil {
			a.SetStatus("Status: " + a.statusLabel(updated))
		}
	}
}

func (a *App) statusLabel(item *model.ListItem) string {
	if item.PrimaryIcon == nil {
		return "none"
	}
	return iconset.StatusLabel(a.session.Registry(), item.PrimaryIcon.SetID, item.PrimaryIcon.IconID)
}

func (a *App) toggleVisible() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	visible := !item.IsVisible()
	if a.edit("visibility", func() bool { return a.session.SetVisible(item.ID, visible) }) {
		if visible {
			a.SetStatus("Shown in presentation")
		} else {
			a.SetStatus("Hidden in presentation")
		}
	}
}

// setAllVisible shows or hides every item in presentation. Headers stay.
func (a *App) setAllVisible(visible bool) {
	if !a.edit("visibility", func() bool { return a.session.SetAllVisible(visible) }) {
		return
	}
	if visible {
		a.SetStatus("All items shown")
	} else {
		a.SetStatus("All items hidden")
	}
}

func (a *App) deleteSelected() {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if item.Text != "" || item.HasChildren() {
		a.SetStatus("Only empty items can be deleted; clear the text first")
		return
	}
	if focus, ok := a.deleteIfEmpty(item.ID); ok {
		a.list.SelectByID(focus)
		a.SetStatus("Deleted item")
	}
}

// moveTopLevel moves the top-level ancestor of the selection by delta
func (a *App) moveTopLevel(delta int) {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	rootID := item.ID
	if path := model.AncestorIDs(a.session.Items(), item.ID); len(path) > 0 {
		rootID = path[0]
	}
	items := a.session.Items()
	for idx, it := range items {
		if it.ID != rootID {
			continue
		}
		to := idx + delta
		if to < 0 || to >= len(items) {
			return
		}
		toID := items[to].ID
		if a.edit("move", func() bool { return a.session.ReorderTopLevel(rootID, toID) }) {
			a.list.SelectByID(item.ID)
		}
		return
	}
}

// Undo restores the tree before the last edit
func (a *App) Undo() {
	snap, ok := a.undo.Undo(a.session.Items())
	if !ok {
		a.SetStatus("Already at oldest change")
		return
	}
	a.restoreSnapshot("Undo "+snap.Label, snap.Items)
}

// Redo reapplies the last undone edit
func (a *App) Redo() {
	snap, ok := a.undo.Redo(a.session.Items())
	if !ok {
		a.SetStatus("Already at newest change")
		return
	}
	a.restoreSnapshot("Redo "+snap.Label, snap.Items)
}

func (a *App) restoreSnapshot(label string, items []*model.ListItem) {
	changes := diff.ComputeDiff(a.session.Items(), items)
	a.session.SetItems(items)
	a.dirty = true
	a.refresh()
	a.SetStatus(label + ": " + changes.Summary())
}

// step moves the disclosure machine and follows the focused item
func (a *App) step(forward bool) {
	m := a.session.Machine()
	if !m.Active() {
		return
	}
	if forward {
		m.Next()
	} else {
		m.Prev()
	}
	a.followFocus()
}

// followFocus selects the focused item so it scrolls into view
func (a *App) followFocus() {
	if id := a.session.Reveal().FocusedID; id != "" {
		a.list.SelectByID(id)
	}
}
