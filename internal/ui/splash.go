package ui

import (
	"strings"
)

// Version is shown on the splash screen and by --version
var Version = "0.1.0"

// SplashScreen is the start screen shown when no file is given
type SplashScreen struct {
	visible bool
}

// NewSplashScreen creates a hidden splash screen
func NewSplashScreen() *SplashScreen {
	return &SplashScreen{}
}

func (s *SplashScreen) Show()           { s.visible = true }
func (s *SplashScreen) Hide()           { s.visible = false }
func (s *SplashScreen) IsVisible() bool { return s.visible }

// GetContent returns the lines of the splash screen. Lines starting with
// ":" are commands, the first line is the title.
func (s *SplashScreen) GetContent() []string {
	return []string{
		"~~ tui-smartlist ~~",
		"Version " + Version,
		"",
		"Lists that reveal themselves",
		"one step at a time",
		"",
		":e <filename>  open or create a list",
		":w <filename>  save this list",
		":present       start presenting",
		":help          show keybindings",
		":q             quit (:q! discards changes)",
		"",
		"press any key to start editing",
	}
}

// Render draws the content centered, leaving the last two rows for the
// command and status lines
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	width, height := screen.Size()
	height -= 2
	bg := screen.BackgroundStyle()
	for y := 0; y < height; y++ {
		screen.FillLine(0, y, bg)
	}

	content := s.GetContent()
	blockWidth := 0
	for _, line := range content {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	startX := max(0, (width-blockWidth)/2)
	startY := max(0, (height-len(content))/2)

	for i, line := range content {
		y := startY + i
		if y >= height {
			break
		}
		style := screen.ListStyle()
		x := startX
		switch {
		case i == 0:
			style = screen.ListHeaderStyle()
			x = max(0, (width-StringWidth(line))/2)
		case strings.HasPrefix(line, ":"):
			style = screen.CommandTextStyle()
		case i == len(content)-1 || strings.HasPrefix(line, "Version"):
			style = screen.ListDescriptionStyle()
		}
		screen.DrawString(x, y, line, style)
	}
}
