package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// List view colors
	ListText        tcell.Color
	ListSelected    tcell.Color
	ListSelectedBg  tcell.Color
	ListHeader      tcell.Color
	ListNumber      tcell.Color
	ListDescription tcell.Color
	ListDetail      tcell.Color
	ListHidden      tcell.Color
	ListArrow       tcell.Color

	// Editor colors
	EditorText   tcell.Color
	EditorCursor tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchResultCount tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusModeBg   tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
	ProgressEmpty  tcell.Color

	// Header colors
	HeaderTitle tcell.Color
	HeaderBg    tcell.Color

	// Diff view colors
	DiffAdded    tcell.Color
	DiffRemoved  tcell.Color
	DiffModified tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// fields maps the TOML key of every color to its slot
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"background":          &c.Background,
		"list_text":           &c.ListText,
		"list_selected":       &c.ListSelected,
		"list_selected_bg":    &c.ListSelectedBg,
		"list_header":         &c.ListHeader,
		"list_number":         &c.ListNumber,
		"list_description":    &c.ListDescription,
		"list_detail":         &c.ListDetail,
		"list_hidden":         &c.ListHidden,
		"list_arrow":          &c.ListArrow,
		"editor_text":         &c.EditorText,
		"editor_cursor":       &c.EditorCursor,
		"search_label":        &c.SearchLabel,
		"search_text":         &c.SearchText,
		"search_result_count": &c.SearchResultCount,
		"command_prompt":      &c.CommandPrompt,
		"command_text":        &c.CommandText,
		"help_background":     &c.HelpBackground,
		"help_border":         &c.HelpBorder,
		"help_title":          &c.HelpTitle,
		"help_content":        &c.HelpContent,
		"status_mode":         &c.StatusMode,
		"status_mode_bg":      &c.StatusModeBg,
		"status_message":      &c.StatusMessage,
		"status_modified":     &c.StatusModified,
		"progress_empty":      &c.ProgressEmpty,
		"header_title":        &c.HeaderTitle,
		"header_bg":           &c.HeaderBg,
		"diff_added":          &c.DiffAdded,
		"diff_removed":        &c.DiffRemoved,
		"diff_modified":       &c.DiffModified,
	}
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	t := &Theme{Name: "default"}
	for _, slot := range t.Colors.fields() {
		*slot = tcell.ColorDefault
	}
	t.Colors.ListHidden = tcell.ColorGray
	t.Colors.ProgressEmpty = tcell.ColorGray
	t.Colors.DiffAdded = tcell.ColorGreen
	t.Colors.DiffRemoved = tcell.ColorRed
	t.Colors.DiffModified = tcell.ColorYellow
	return t
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:        HexToColor("#1a1b26"),
			ListText:          HexToColor("#c0caf5"),
			ListSelected:      HexToColor("#7aa2f7"),
			ListSelectedBg:    HexToColor("#283457"),
			ListHeader:        HexToColor("#bb9af7"),
			ListNumber:        HexToColor("#7dcfff"),
			ListDescription:   HexToColor("#a9b1d6"),
			ListDetail:        HexToColor("#9aa5ce"),
			ListHidden:        HexToColor("#565f89"),
			ListArrow:         HexToColor("#7dcfff"),
			EditorText:        HexToColor("#c0caf5"),
			EditorCursor:      HexToColor("#7aa2f7"),
			SearchLabel:       HexToColor("#bb9af7"),
			SearchText:        HexToColor("#c0caf5"),
			SearchResultCount: HexToColor("#9ece6a"),
			CommandPrompt:     HexToColor("#bb9af7"),
			CommandText:       HexToColor("#c0caf5"),
			HelpBackground:    HexToColor("#1a1b26"),
			HelpBorder:        HexToColor("#7dcfff"),
			HelpTitle:         HexToColor("#bb9af7"),
			HelpContent:       HexToColor("#c0caf5"),
			StatusMode:        HexToColor("#1a1b26"),
			StatusModeBg:      HexToColor("#bb9af7"),
			StatusMessage:     HexToColor("#9ece6a"),
			StatusModified:    HexToColor("#f7768e"),
			ProgressEmpty:     HexToColor("#3b4261"),
			HeaderTitle:       HexToColor("#bb9af7"),
			HeaderBg:          HexToColor("#16161e"),
			DiffAdded:         HexToColor("#9ece6a"),
			DiffRemoved:       HexToColor("#f7768e"),
			DiffModified:      HexToColor("#e0af68"),
		},
	}
}
