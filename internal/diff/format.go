package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BuildDiffLines converts a DiffResult into formatted display lines
// This is suitable for both CLI and TUI output
func BuildDiffLines(result *DiffResult, verbose bool) []DiffLine {
	var lines []DiffLine

	if len(result.NewItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeNewSection, Content: "New Items:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})

		for _, id := range getSortedIDs(result.NewItems) {
			lines = append(lines, formatNewItem(result.NewItems[id], verbose)...)
		}
	}

	if len(result.DeletedItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeDeletedSection, Content: "Deleted Items:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})

		for _, id := range getSortedIDs(result.DeletedItems) {
			lines = append(lines, formatDeletedItem(result.DeletedItems[id])...)
		}
	}

	if len(result.ModifiedItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeModifiedSection, Content: "Modified Items:"})
		lines = append(lines, DiffLine{Type: DiffTypeBlank})

		for _, id := range getSortedIDs(result.ModifiedItems) {
			lines = append(lines, formatModifiedItem(result.ModifiedItems[id], verbose)...)
		}
	}

	if !result.Empty() {
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
		lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: "=== Summary ==="})
		lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: "  " + result.Summary()})
	}

	return lines
}

// Render joins diff lines into plain text with two spaces per indent level
func Render(lines []DiffLine) string {
	var b strings.Builder
	for _, line := range lines {
		if line.Type != DiffTypeBlank {
			b.WriteString(strings.Repeat("  ", line.Indent))
			b.WriteString(line.Content)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatNewItem creates display lines for a newly added item
func formatNewItem(item *ItemData, verbose bool) []DiffLine {
	var lines []DiffLine

	lines = append(lines, DiffLine{
		Type:    DiffTypeNewItem,
		Content: fmt.Sprintf("%s: %s", item.ID, truncateText(item.Text, 60)),
		Indent:  1,
	})

	if verbose {
		if item.ParentID != "" {
			lines = append(lines, detail("PARENT: %s at position %d", item.ParentID, item.Position))
		} else {
			lines = append(lines, detail("POSITION: root position %d", item.Position))
		}
		if item.Status != "" {
			lines = append(lines, detail("STATUS: %s", item.Status))
		}
	}

	lines = append(lines, DiffLine{Type: DiffTypeBlank})
	return lines
}

// formatDeletedItem creates display lines for a deleted item
func formatDeletedItem(item *ItemData) []DiffLine {
	return []DiffLine{
		{
			Type:    DiffTypeDeletedItem,
			Content: fmt.Sprintf("%s: %s", item.ID, truncateText(item.Text, 60)),
			Indent:  1,
		},
		{Type: DiffTypeBlank},
	}
}

// formatModifiedItem creates display lines for a modified item
func formatModifiedItem(change *ItemChange, verbose bool) []DiffLine {
	var lines []DiffLine

	lines = append(lines, DiffLine{
		Type:    DiffTypeModifiedItem,
		Content: fmt.Sprintf("%s: %s", change.Item.ID, truncateText(change.Item.Text, 60)),
		Indent:  1,
	})

	if change.TextChanged {
		lines = append(lines, detail("TEXT: %s → %s",
			truncateText(change.OldText, 40),
			truncateText(change.Item.Text, 40)))
	}

	if change.KindChanged {
		if change.Item.IsHeader {
			lines = append(lines, detail("KIND: item → header"))
		} else {
			lines = append(lines, detail("KIND: header → item"))
		}
	}

	if change.StatusChanged {
		lines = append(lines, detail("STATUS: %s → %s", orNone(change.OldStatus), orNone(change.Item.Status)))
	}

	if change.SecondaryChanged {
		lines = append(lines, detail("SECONDARY: %s → %s", orNone(change.OldSecondary), orNone(change.Item.Secondary)))
	}

	if change.VisibilityChanged {
		if change.Item.Visible {
			lines = append(lines, detail("VISIBLE: shown"))
		} else {
			lines = append(lines, detail("VISIBLE: hidden"))
		}
	}

	if change.DescriptionChanged {
		lines = append(lines, detail("DESCRIPTION: %s", truncateText(change.Item.Description, 60)))
	}

	if change.DetailChanged && verbose {
		lines = append(lines, detail("DETAIL: %s", truncateText(change.Item.Detail, 60)))
	} else if change.DetailChanged {
		lines = append(lines, detail("DETAIL changed"))
	}

	if change.StructureChanged {
		oldParent := orRoot(change.OldParentID)
		newParent := orRoot(change.Item.ParentID)

		if oldParent != newParent {
			lines = append(lines, detail("MOVED: from parent %s to parent %s", oldParent, newParent))
		}
		if change.OldPosition != change.Item.Position {
			lines = append(lines, detail("POSITION: %d → %d", change.OldPosition, change.Item.Position))
		}
	}

	lines = append(lines, DiffLine{Type: DiffTypeBlank})
	return lines
}

func detail(format string, args ...any) DiffLine {
	return DiffLine{
		Type:    DiffTypeItemDetail,
		Content: fmt.Sprintf(format, args...),
		Indent:  2,
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func orRoot(s string) string {
	if s == "" {
		return "root"
	}
	return s
}

// truncateText limits text to maxWidth terminal cells, showing only the
// first line of multi-line text
func truncateText(text string, maxWidth int) string {
	lines := strings.Split(text, "\n")
	text = lines[0]
	if len(lines) > 1 {
		text += " ..."
	}

	return runewidth.Truncate(text, maxWidth, "...")
}

// getSortedIDs returns a sorted slice of keys from a map
func getSortedIDs[T any](items map[string]T) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
