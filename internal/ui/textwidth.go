package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// All widths here are display columns, not bytes or runes.

// RuneWidth returns the number of columns r occupies. Control and combining
// characters take none.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of s
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting runes
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateToWidthWithEllipsis cuts s to maxWidth columns, ending in "..."
// when anything was dropped
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadStringToWidth right-pads s with spaces to width columns
func PadStringToWidth(s string, width int) string {
	if current := StringWidth(s); current < width {
		return s + strings.Repeat(" ", width-current)
	}
	return s
}

// CalculateBreakPoint finds where to break s so that the first part fits in
// maxWidth. It prefers the position after the last space and falls back to a
// rune boundary. Returns the byte index and the width of the first part.
func CalculateBreakPoint(s string, maxWidth int) (byteIndex int, actualWidth int) {
	if maxWidth <= 0 {
		return 0, 0
	}

	width := 0
	lastSpace, lastSpaceWidth := -1, 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			if isSpace(r) {
				return i, width
			}
			if lastSpace >= 0 {
				return lastSpace, lastSpaceWidth
			}
			return i, width
		}
		width += rw
		if r == ' ' || r == '\t' {
			lastSpace, lastSpaceWidth = i+1, width
		}
	}
	return len(s), width
}

// WrapText splits text into lines of at most width columns. Explicit
// newlines start a new line; trailing spaces at a break are dropped.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		for para != "" {
			idx, _ := CalculateBreakPoint(para, width)
			if idx == 0 {
				// a single rune wider than the line
				_, size := utf8.DecodeRuneInString(para)
				idx = size
			}
			lines = append(lines, strings.TrimRight(para[:idx], " \t"))
			para = strings.TrimLeft(para[idx:], " \t")
		}
	}
	return lines
}

// deleteWordBefore removes the word that ends at cursor, along with the
// spaces between it and the cursor
func deleteWordBefore(runes []rune, cursor int) ([]rune, int) {
	pos := cursor
	for pos > 0 && isSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpace(runes[pos-1]) {
		pos--
	}
	out := append(runes[:pos:pos], runes[cursor:]...)
	return out, pos
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
