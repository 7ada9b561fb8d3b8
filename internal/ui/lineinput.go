package ui

import (
	"github.com/gdamore/tcell/v2"
)

// lineInput is an editable line of text with a rune cursor, shared by the
// item editor, the command line and the search prompt
type lineInput struct {
	runes     []rune
	cursor    int
	multiline bool // Ctrl+J inserts a newline
}

func (l *lineInput) set(text string) {
	l.runes = []rune(text)
	l.cursor = len(l.runes)
}

func (l *lineInput) text() string {
	return string(l.runes)
}

func (l *lineInput) empty() bool {
	return len(l.runes) == 0
}

func (l *lineInput) insert(r rune) {
	l.runes = append(l.runes[:l.cursor], append([]rune{r}, l.runes[l.cursor:]...)...)
	l.cursor++
}

// handleKey applies an editing key and reports whether it was one
func (l *lineInput) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if l.cursor > 0 {
			l.runes = append(l.runes[:l.cursor-1], l.runes[l.cursor:]...)
			l.cursor--
		}
	case tcell.KeyDelete:
		if l.cursor < len(l.runes) {
			l.runes = append(l.runes[:l.cursor], l.runes[l.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if l.cursor > 0 {
			l.cursor--
		}
	case tcell.KeyRight:
		if l.cursor < len(l.runes) {
			l.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursor = len(l.runes)
	case tcell.KeyCtrlU:
		l.runes = append([]rune{}, l.runes[l.cursor:]...)
		l.cursor = 0
	case tcell.KeyCtrlK:
		l.runes = l.runes[:l.cursor]
	case tcell.KeyCtrlW:
		l.runes, l.cursor = deleteWordBefore(l.runes, l.cursor)
	case tcell.KeyCtrlJ:
		if !l.multiline {
			return false
		}
		l.insert('\n')
	case tcell.KeyRune:
		l.insert(ev.Rune())
	default:
		return false
	}
	return true
}

// render draws the field in [x, x+width) and scrolls so the cursor stays
// in view. Newlines are shown as a return symbol.
func (l *lineInput) render(screen *Screen, x, y, width int, style, cursorStyle tcell.Style) {
	if width <= 0 {
		return
	}

	// widths up to the cursor decide the scroll offset
	start := 0
	used := 1 // the cursor cell
	for i := l.cursor - 1; i >= 0; i-- {
		w := displayWidth(l.runes[i])
		if used+w > width {
			start = i + 1
			break
		}
		used += w
	}

	col := x
	for i := start; i < len(l.runes) && col < x+width; i++ {
		r := l.runes[i]
		if r == '\n' {
			r = '⏎'
		}
		s := style
		if i == l.cursor {
			s = cursorStyle
		}
		col = screen.DrawText(col, y, string(r), x+width, s)
	}
	if l.cursor >= len(l.runes) && col < x+width {
		screen.SetCell(col, y, ' ', cursorStyle)
		col++
	}
	for ; col < x+width; col++ {
		screen.SetCell(col, y, ' ', style)
	}
}

func displayWidth(r rune) int {
	if r == '\n' {
		return 1
	}
	return RuneWidth(r)
}
