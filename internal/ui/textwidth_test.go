package ui

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		// ASCII
		{"ASCII letter", 'A', 1},
		{"ASCII space", ' ', 1},
		{"ASCII digit", '5', 1},

		// Wide characters
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Japanese hiragana", 'あ', 2},
		{"Korean hangul", '한', 2},

		// Combining marks
		{"Combining acute", '\u0301', 0},
		{"Zero width joiner", '\u200d', 0},

		// Control characters
		{"Tab", '\t', 0},
		{"Newline", '\n', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuneWidth(tt.r)
			if got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		// ASCII
		{"ASCII only", "Hello", 5},
		{"ASCII with spaces", "Hello World", 11},

		// Mixed ASCII and emoji
		{"Emoji with text", "😀 Hello", 8}, // 2 + 1 + 5
		{"Multiple emoji", "😀😀", 4},

		// CJK characters
		{"Chinese", "中国", 4},
		{"Japanese", "こんにちは", 10},
		{"Mixed CJK and ASCII", "Hello中国", 9}, // 5 + 4

		// Edge cases
		{"Empty string", "", 0},
		{"Single ASCII", "a", 1},
		{"Single emoji", "😀", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringWidth(tt.input)
			if got != tt.expected {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
		expWidth int
	}{
		// ASCII
		{"ASCII fits", "Hello", 10, "Hello", 5},
		{"ASCII truncated", "Hello", 3, "Hel", 3},
		{"ASCII exact", "Hello", 5, "Hello", 5},

		// Emoji - ensure we don't split them
		{"Emoji fits", "😀Hi", 10, "😀Hi", 4},
		{"Emoji truncated before", "😀Hello", 2, "😀", 2},
		{"Emoji truncated after", "Hi😀", 3, "Hi", 2},
		{"Multiple emoji truncated", "😀😀😀", 5, "😀😀", 4},

		// CJK
		{"Chinese fits", "中国", 10, "中国", 4},
		{"Chinese truncated", "中国", 2, "中", 2},

		// Mixed
		{"Mixed fits", "Hello中国", 20, "Hello中国", 9},
		{"Mixed truncated at ASCII", "Hello中国", 4, "Hell", 4},
		{"Mixed truncated before CJK", "Hello中国", 5, "Hello", 5},

		// Edge cases
		{"Empty string", "", 5, "", 0},
		{"MaxWidth 0", "Hello", 0, "", 0},
		{"MaxWidth negative", "Hello", -1, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}

			// Also verify width
			width := StringWidth(got)
			if width != tt.expWidth {
				t.Errorf("Result width %d, want %d", width, tt.expWidth)
			}
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		maxWidth      int
		expected      string
		checkEllipsis bool
	}{
		// String that fits
		{"Fits no ellipsis", "Hello", 10, "Hello", false},

		// String that needs truncation
		{"Long ASCII", "HelloWorld", 5, "", true},
		{"Long with emoji", "😀HelloWorld", 7, "", true},

		// Edge cases
		{"MaxWidth 5", "HelloWorld", 5, "..", true},
		{"MaxWidth 2", "HelloWorld", 2, "", false},
		{"Empty string", "", 5, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidthWithEllipsis(tt.input, tt.maxWidth)

			if tt.checkEllipsis {
				// Just check that it ends with ellipsis
				if len(got) < 3 || got[len(got)-3:] != "..." {
					t.Errorf("Result should end with '...': %q", got)
				}
			}

			width := StringWidth(got)
			if width > tt.maxWidth {
				t.Errorf("Result width %d exceeds maxWidth %d", width, tt.maxWidth)
			}
		})
	}
}

func TestPadStringToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		// ASCII
		{"ASCII shorter", "Hi", 5, "Hi   "},
		{"ASCII exact", "Hello", 5, "Hello"},
		{"ASCII longer", "Hello", 3, "Hello"},

		// Emoji (width 2)
		{"Emoji shorter", "😀", 5, "😀   "},
		{"Emoji exact", "😀Hi", 4, "😀Hi"},

		// CJK
		{"CJK shorter", "中", 5, "中   "},

		// Edge cases
		{"Empty string", "", 5, "     "},
		{"Width 0", "Hi", 0, "Hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadStringToWidth(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("PadStringToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}

			width := StringWidth(got)
			if width < tt.width {
				t.Errorf("Result width %d less than requested %d", width, tt.width)
			}
		})
	}
}

func TestCalculateBreakPoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expIdx   int
		expWidth int
	}{
		// ASCII - word boundaries preferred
		{"ASCII no space", "HelloWorld", 5, 5, 5},
		{"ASCII with space", "Hello World", 6, 6, 6}, // "Hello "
		{"ASCII space boundary", "Hello World", 5, 5, 5},
		{"ASCII multiple words", "Hello Beautiful World", 8, 6, 6}, // "Hello "

		// Emoji
		{"Single emoji", "😀Hello", 3, 5, 3},
		{"Emoji and words", "Hi 😀 World", 4, 3, 3}, // "Hi " (before emoji)

		// Edge cases
		{"Fits entirely", "Hello", 10, 5, 5},
		{"Empty string", "", 5, 0, 0},
		{"MaxWidth 0", "Hello", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIdx, gotWidth := CalculateBreakPoint(tt.input, tt.maxWidth)
			if gotIdx != tt.expIdx || gotWidth != tt.expWidth {
				t.Errorf("CalculateBreakPoint(%q, %d) = (%d, %d), want (%d, %d)",
					tt.input, tt.maxWidth, gotIdx, gotWidth, tt.expIdx, tt.expWidth)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected []string
	}{
		{"Fits", "Short detail", 20, []string{"Short detail"}},
		{"Word wrap", "Explain the rollout plan in detail", 12, []string{"Explain the", "rollout plan", "in detail"}},
		{"Explicit newlines", "First\n\nThird", 20, []string{"First", "", "Third"}},
		{"Long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"Wide runes", "中国中国", 4, []string{"中国", "中国"}},
		{"Zero width", "text", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, tt.width)
			if len(got) != len(tt.expected) {
				t.Fatalf("WrapText(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.expected[i])
				}
				if StringWidth(got[i]) > tt.width {
					t.Errorf("line %d is wider than %d: %q", i, tt.width, got[i])
				}
			}
		})
	}
}

func TestDeleteWordBefore(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		expected  string
		expCursor int
	}{
		{"End of line", "add item now", 12, "add item ", 9},
		{"Trailing spaces", "add item   ", 11, "add ", 4},
		{"Middle", "add item now", 8, "add  now", 4},
		{"Start", "add", 0, "add", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := deleteWordBefore([]rune(tt.input), tt.cursor)
			if string(got) != tt.expected || cursor != tt.expCursor {
				t.Errorf("deleteWordBefore(%q, %d) = (%q, %d), want (%q, %d)",
					tt.input, tt.cursor, string(got), cursor, tt.expected, tt.expCursor)
			}
		})
	}
}
