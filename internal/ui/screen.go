package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.TokyoNight()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Suspend releases terminal control temporarily
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume restores terminal control after suspension
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text starting at x and returns the column after it.
// Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	return s.DrawText(x, y, text, s.width, style)
}

// DrawText draws text but stops before column maxX. Returns the column
// after the last drawn rune.
func (s *Screen) DrawText(x, y int, text string, maxX int, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetCell(x, y, r, style)
		if w == 2 {
			s.SetCell(x+1, y, ' ', style)
		}
		x += w
	}
	return x
}

// FillLine paints columns [x, width) of row y
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, resize, interrupt)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent wakes up PollEvent from another goroutine
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Fade draws the foreground of style at the given opacity over its
// background. Fully opaque styles are returned unchanged.
func (s *Screen) Fade(style tcell.Style, opacity float64) tcell.Style {
	if opacity >= 1 {
		return style
	}
	fg, bg, _ := style.Decompose()
	if bg == tcell.ColorDefault {
		bg = s.Theme.Colors.Background
	}
	return style.Foreground(theme.Fade(fg, bg, opacity, s.Theme.Colors.ListHidden))
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

func (s *Screen) fg(c tcell.Color) tcell.Style {
	return theme.ColorPairToStyle(c, s.Theme.Colors.Background)
}

// ListStyle is the style of plain item text
func (s *Screen) ListStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListText)
}

// ListSelectedStyle is the style of the row under the cursor
func (s *Screen) ListSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListSelected, s.Theme.Colors.ListSelectedBg).Bold(true)
}

// ListHeaderStyle is the style of header rows
func (s *Screen) ListHeaderStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListHeader).Bold(true)
}

// ListNumberStyle is the style of numbering labels
func (s *Screen) ListNumberStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListNumber)
}

// ListDescriptionStyle is the style of the secondary text after an item
func (s *Screen) ListDescriptionStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListDescription).Italic(true)
}

// ListDetailStyle is the style of an open detail pane
func (s *Screen) ListDetailStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListDetail)
}

// ListHiddenStyle is the style of items hidden from the presentation,
// as shown while editing
func (s *Screen) ListHiddenStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListHidden).Italic(true)
}

// ListArrowStyle is the style of collapse arrows
func (s *Screen) ListArrowStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ListArrow)
}

// IconStyle colors a glyph with an icon-set color, falling back to the text color
func (s *Screen) IconStyle(hex string) tcell.Style {
	if hex == "" {
		return s.ListStyle()
	}
	if c := theme.HexToColor(hex); c != tcell.ColorDefault {
		return s.fg(c)
	}
	return s.ListStyle()
}

// EditorStyle returns the style for editor text
func (s *Screen) EditorStyle() tcell.Style {
	return s.fg(s.Theme.Colors.EditorText)
}

// EditorCursorStyle returns the style for the editor cursor
func (s *Screen) EditorCursorStyle() tcell.Style {
	return s.EditorStyle().Reverse(true)
}

// SearchLabelStyle returns the style for the search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchText)
}

// SearchResultCountStyle returns the style for the match counter
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return s.fg(s.Theme.Colors.SearchResultCount)
}

// CommandPromptStyle returns the style for the command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return s.fg(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return s.fg(s.Theme.Colors.CommandText)
}

// HelpStyle returns the style for help content
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for the help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.StatusModeBg).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return s.fg(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for the modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return s.fg(s.Theme.Colors.StatusModified)
}

// ProgressEmptyStyle is the style of the unfilled part of the progress bar
func (s *Screen) ProgressEmptyStyle() tcell.Style {
	return s.fg(s.Theme.Colors.ProgressEmpty)
}

// HeaderStyle returns the style for the title bar
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.HeaderBg).Bold(true)
}

// DiffStyle returns the style for added (+1), removed (-1) or modified (0) diff lines
func (s *Screen) DiffStyle(kind int) tcell.Style {
	switch {
	case kind > 0:
		return s.fg(s.Theme.Colors.DiffAdded)
	case kind < 0:
		return s.fg(s.Theme.Colors.DiffRemoved)
	}
	return s.fg(s.Theme.Colors.DiffModified)
}
