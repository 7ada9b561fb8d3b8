package iconset

import "github.com/pstuifzand/tui-smartlist/internal/model"

// Status returns the built-in task status set
func Status() *IconSet {
	return &IconSet{
		ID:   "status",
		Name: "Status",
		Entries: []Entry{
			{ID: "done", Icon: model.Glyph("✔"), Label: "Done", Color: "#9ece6a"},
			{ID: "in-progress", Icon: model.Glyph("◐"), Label: "In Progress", Color: "#e0af68"},
			{ID: "todo", Icon: model.Glyph("○"), Label: "Todo", Color: "#7aa2f7"},
			{ID: "blocked", Icon: model.Glyph("✖"), Label: "Blocked", Color: "#f7768e"},
		},
	}
}

// Priority returns the built-in priority set
func Priority() *IconSet {
	return &IconSet{
		ID:   "priority",
		Name: "Priority",
		Entries: []Entry{
			{ID: "high", Icon: model.Glyph("▲"), Label: "High", Color: "#f7768e"},
			{ID: "medium", Icon: model.Glyph("■"), Label: "Medium", Color: "#e0af68"},
			{ID: "low", Icon: model.Glyph("▼"), Label: "Low", Color: "#7dcfff"},
		},
	}
}

// Check returns the built-in yes/no/maybe set
func Check() *IconSet {
	return &IconSet{
		ID:   "check",
		Name: "Check",
		Entries: []Entry{
			{ID: "yes", Icon: model.Glyph("✓"), Label: "Yes", Color: "#9ece6a"},
			{ID: "no", Icon: model.Glyph("✗"), Label: "No", Color: "#f7768e"},
			{ID: "maybe", Icon: model.Glyph("?"), Label: "Maybe", Color: "#bb9af7"},
		},
	}
}

// Builtin returns a registry holding the built-in sets
func Builtin() *MapRegistry {
	return NewMapRegistry(Status(), Priority(), Check())
}
