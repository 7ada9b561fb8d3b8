package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpSection is a titled group of keybindings
type HelpSection struct {
	Title    string
	Bindings []KeyBindingInfo
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible  bool
	sections []HelpSection
	offset   int
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetSections sets the keybindings to display
func (h *HelpScreen) SetSections(sections []HelpSection) {
	h.sections = sections
	h.offset = 0
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.offset = 0
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the help text by delta lines
func (h *HelpScreen) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, len(h.Lines())-1))
}

// Lines returns the help text
func (h *HelpScreen) Lines() []string {
	var result []string
	for i, section := range h.sections {
		if i > 0 {
			result = append(result, "")
		}
		result = append(result, section.Title+":")
		for _, kb := range section.Bindings {
			result = append(result, fmt.Sprintf("  %-10s - %s", kb.GetKey(), kb.GetDescription()))
		}
	}
	return result
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()
	width, height := screen.Size()

	startX, startY := 4, 1
	boxWidth := width - 2*startX
	boxHeight := height - 2*startY
	if boxWidth < 20 || boxHeight < 5 {
		return
	}
	right := startX + boxWidth - 1
	bottom := startY + boxHeight - 1

	for y := startY; y <= bottom; y++ {
		for x := startX; x <= right; x++ {
			screen.SetCell(x, y, ' ', contentStyle)
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(right, y, '│', borderStyle)
	}
	for x := startX + 1; x < right; x++ {
		screen.SetCell(x, startY, '─', borderStyle)
		screen.SetCell(x, startY+2, '─', borderStyle)
		screen.SetCell(x, bottom, '─', borderStyle)
	}
	screen.SetCell(startX, startY, '┌', borderStyle)
	screen.SetCell(right, startY, '┐', borderStyle)
	screen.SetCell(startX, startY+2, '├', borderStyle)
	screen.SetCell(right, startY+2, '┤', borderStyle)
	screen.SetCell(startX, bottom, '└', borderStyle)
	screen.SetCell(right, bottom, '┘', borderStyle)

	screen.DrawText(startX+2, startY+1, " Keybindings (? to close, j/k to scroll) ", right, titleStyle)

	lines := h.Lines()
	y := startY + 3
	for i := h.offset; i < len(lines) && y < bottom; i++ {
		screen.DrawText(startX+2, y, lines[i], right, contentStyle)
		y++
	}
}
