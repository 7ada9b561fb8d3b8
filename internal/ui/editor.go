package ui

import (
	"github.com/gdamore/tcell/v2"
)

// EditField is the part of an item an editor changes
type EditField int

const (
	FieldText EditField = iota
	FieldDescription
	FieldDetail
)

func (f EditField) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldDetail:
		return "detail"
	default:
		return "text"
	}
}

// Editor manages inline editing of one field of a list item. It does not
// touch the item; the caller applies GetText through the session.
type Editor struct {
	itemID   string
	field    EditField
	original string
	input    lineInput
	active   bool
}

// NewEditor creates an editor for a field whose current value is text
func NewEditor(itemID string, field EditField, text string) *Editor {
	e := &Editor{
		itemID:   itemID,
		field:    field,
		original: text,
	}
	e.input.multiline = field == FieldDetail
	e.input.set(text)
	return e
}

// Start starts editing with the cursor at the end
func (e *Editor) Start() {
	e.active = true
	e.input.cursor = len(e.input.runes)
}

// Stop stops editing and returns the final text
func (e *Editor) Stop() string {
	e.active = false
	return e.input.text()
}

// Cancel stops editing and returns the text from before the edit
func (e *Editor) Cancel() string {
	e.active = false
	return e.original
}

// IsActive returns whether the editor is active
func (e *Editor) IsActive() bool {
	return e.active
}

// ItemID returns the id of the item being edited
func (e *Editor) ItemID() string {
	return e.itemID
}

// Field returns the field being edited
func (e *Editor) Field() EditField {
	return e.field
}

// Changed reports whether the text differs from the original
func (e *Editor) Changed() bool {
	return e.input.text() != e.original
}

// HandleKey handles a key press during editing. It returns false for
// Escape and Enter so the caller can end the edit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if !e.active {
		return false
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		return false
	}
	e.input.handleKey(ev)
	return true
}

// Render renders the editor on the screen
func (e *Editor) Render(screen *Screen, x, y int, maxWidth int) {
	e.input.render(screen, x, y, maxWidth, screen.EditorStyle(), screen.EditorCursorStyle())
}

// GetText returns the current text
func (e *Editor) GetText() string {
	return e.input.text()
}

// SetText replaces the text and moves the cursor to the end
func (e *Editor) SetText(text string) {
	e.input.set(text)
}

// GetCursorPos returns the cursor position in runes
func (e *Editor) GetCursorPos() int {
	return e.input.cursor
}
