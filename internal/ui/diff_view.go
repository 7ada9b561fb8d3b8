package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/diff"
)

// DiffView is a scrollable overlay for diffs and other long listings
type DiffView struct {
	visible      bool
	title        string
	lines        []diff.DiffLine
	scrollOffset int
	pageHeight   int
}

// NewDiffView creates a hidden diff view
func NewDiffView() *DiffView {
	return &DiffView{}
}

// Show displays the changes from one list to another
func (dv *DiffView) Show(result *diff.DiffResult, from, to string) {
	lines := diff.BuildDiffLines(result, false)
	if len(lines) == 0 {
		lines = []diff.DiffLine{{Type: diff.DiffTypeSummary, Content: "No changes"}}
	}
	dv.open(" Diff: "+from+" → "+to+" ", lines)
}

// ShowText displays plain lines under title
func (dv *DiffView) ShowText(title string, text []string) {
	lines := make([]diff.DiffLine, 0, len(text))
	for _, t := range text {
		lines = append(lines, diff.DiffLine{Type: diff.DiffTypeItemDetail, Content: t})
	}
	dv.open(" "+title+" ", lines)
}

func (dv *DiffView) open(title string, lines []diff.DiffLine) {
	dv.title = title
	dv.lines = lines
	dv.scrollOffset = 0
	dv.visible = true
}

// Hide closes the view
func (dv *DiffView) Hide() {
	dv.visible = false
}

// IsVisible returns whether the view is shown
func (dv *DiffView) IsVisible() bool {
	return dv.visible
}

// Lines returns the lines being shown
func (dv *DiffView) Lines() []diff.DiffLine {
	return dv.lines
}

// HandleKey scrolls or closes the view
func (dv *DiffView) HandleKey(ev *tcell.EventKey) {
	page := max(1, dv.pageHeight/2)
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		dv.Hide()
	case tcell.KeyUp:
		dv.scroll(-1)
	case tcell.KeyDown:
		dv.scroll(1)
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		dv.scroll(-page)
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		dv.scroll(page)
	case tcell.KeyHome:
		dv.scrollOffset = 0
	case tcell.KeyEnd:
		dv.scroll(len(dv.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			dv.Hide()
		case 'j':
			dv.scroll(1)
		case 'k':
			dv.scroll(-1)
		}
	}
}

func (dv *DiffView) scroll(delta int) {
	maxScroll := max(0, len(dv.lines)-dv.pageHeight)
	dv.scrollOffset = max(0, min(dv.scrollOffset+delta, maxScroll))
}

// Render draws the view as a box over the list
func (dv *DiffView) Render(screen *Screen) {
	if !dv.visible {
		return
	}
	width, height := screen.Size()
	startX, startY := 2, 1
	boxWidth, boxHeight := width-4, height-2
	if boxWidth < 20 || boxHeight < 5 {
		return
	}
	dv.pageHeight = boxHeight - 4

	right := startX + boxWidth - 1
	bottom := startY + boxHeight - 1
	drawBox(screen, startX, startY, right, bottom, screen.HelpBorderStyle(), screen.HelpStyle())

	screen.DrawText(startX+1, startY, dv.title, right, screen.HelpTitleStyle())
	screen.DrawText(startX+1, bottom, " j/k: scroll  Ctrl+U/D: page  q/Esc: close ", right, screen.HelpBorderStyle())

	y := startY + 2
	for i := dv.scrollOffset; i < len(dv.lines) && y < bottom-1; i++ {
		line := dv.lines[i]
		text := strings.Repeat("  ", line.Indent) + line.Content
		text = TruncateToWidthWithEllipsis(text, boxWidth-4)
		screen.DrawText(startX+2, y, text, right, dv.styleFor(screen, line.Type))
		y++
	}

	if len(dv.lines) > dv.pageHeight && dv.pageHeight > 0 {
		barY := startY + 2 + dv.scrollOffset*dv.pageHeight/len(dv.lines)
		screen.SetCell(right-1, barY, '█', screen.HelpBorderStyle())
	}
}

func (dv *DiffView) styleFor(screen *Screen, t diff.DiffLineType) tcell.Style {
	switch t {
	case diff.DiffTypeNewSection, diff.DiffTypeNewItem:
		return screen.DiffStyle(1)
	case diff.DiffTypeDeletedSection, diff.DiffTypeDeletedItem:
		return screen.DiffStyle(-1)
	case diff.DiffTypeModifiedSection, diff.DiffTypeModifiedItem:
		return screen.DiffStyle(0)
	case diff.DiffTypeHeader, diff.DiffTypeSummary:
		return screen.HelpTitleStyle()
	}
	return screen.HelpStyle()
}

// drawBox fills a bordered box from (x1, y1) to (x2, y2)
func drawBox(screen *Screen, x1, y1, x2, y2 int, border, fill tcell.Style) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			screen.SetCell(x, y, ' ', fill)
		}
		screen.SetCell(x1, y, '│', border)
		screen.SetCell(x2, y, '│', border)
	}
	for x := x1 + 1; x < x2; x++ {
		screen.SetCell(x, y1, '─', border)
		screen.SetCell(x, y2, '─', border)
	}
	screen.SetCell(x1, y1, '┌', border)
	screen.SetCell(x2, y1, '┐', border)
	screen.SetCell(x1, y2, '└', border)
	screen.SetCell(x2, y2, '┘', border)
}
