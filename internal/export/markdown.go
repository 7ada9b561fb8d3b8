// Package export writes lists to other formats.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
)

// DefaultTimestampFormat is the strftime format of the export stamp
const DefaultTimestampFormat = "%Y-%m-%d %H:%M"

// Options controls what ExportMarkdown writes
type Options struct {
	Config        model.Config
	Registry      iconset.Registry
	Collapsed     pipeline.CollapseLookup
	IncludeDetail bool
	// Timestamp adds an "Exported" line when it is not zero
	Timestamp       time.Time
	TimestampFormat string
}

// ExportToMarkdown exports a document to a markdown file
func ExportToMarkdown(doc *model.Document, filePath string, opts Options) error {
	content := ExportMarkdown(doc, opts)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// ExportMarkdown renders the document as the presentation shows it: hidden
// items, filtered statuses and collapsed subtrees are left out. Items become
// bullets indented two spaces per level; top-level headers become headings.
func ExportMarkdown(doc *model.Document, opts Options) string {
	var sb strings.Builder
	cfg := opts.Config.Normalize()

	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	}
	if !opts.Timestamp.IsZero() {
		format := opts.TimestampFormat
		if format == "" {
			format = DefaultTimestampFormat
		}
		fmt.Fprintf(&sb, "_Exported %s_\n\n", strftime.Format(format, opts.Timestamp))
	}

	progress := pipeline.ComputeProgress(doc.Items, cfg.IconSetID, opts.Registry)
	if cfg.ProgressSummary == model.ProgressAbove && !progress.Empty() {
		fmt.Fprintf(&sb, "%s\n\n", ProgressLine(progress))
	}

	rows := pipeline.RenderSequence(doc.Items, pipeline.Options{
		Config:    cfg,
		Collapsed: opts.Collapsed,
		Registry:  opts.Registry,
	})
	writeRows(&sb, rows, opts)

	if cfg.ProgressSummary == model.ProgressBelow && !progress.Empty() {
		fmt.Fprintf(&sb, "\n%s\n", ProgressLine(progress))
	}

	return sb.String()
}

// writeRows writes the flat rows. Items without text are skipped and their
// children move up one level.
func writeRows(sb *strings.Builder, rows []pipeline.FlatListItem, opts Options) {
	childDepth := make(map[string]int)
	for _, row := range rows {
		item := row.Item
		depth := 0
		if row.ParentID != "" {
			depth = childDepth[row.ParentID]
		}

		if strings.TrimSpace(item.Text) == "" {
			childDepth[item.ID] = depth
			continue
		}
		childDepth[item.ID] = depth + 1

		indent := strings.Repeat("  ", depth)
		if item.IsHeader {
			if depth == 0 {
				fmt.Fprintf(sb, "\n## %s\n\n", item.Text)
			} else {
				fmt.Fprintf(sb, "%s- **%s**\n", indent, item.Text)
			}
			continue
		}

		sb.WriteString(indent)
		sb.WriteString("- ")
		if glyph := iconset.GlyphFor(opts.Registry, item.PrimaryIcon); glyph != "" {
			sb.WriteString(glyph)
			sb.WriteString(" ")
		}
		if row.NumberLabel != "" {
			sb.WriteString(row.NumberLabel)
			sb.WriteString(" ")
		}
		sb.WriteString(item.Text)
		if item.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(item.Description)
		}
		sb.WriteString("\n")

		if opts.IncludeDetail && item.Detail != "" {
			for _, line := range strings.Split(item.Detail, "\n") {
				fmt.Fprintf(sb, "%s  > %s\n", indent, line)
			}
		}
	}
}

// ProgressLine formats progress as "Progress: Done 2/5 · Todo 3/5"
func ProgressLine(p pipeline.Progress) string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		parts = append(parts, fmt.Sprintf("%s %d/%d", s.Label, s.Count, p.Total))
	}
	return "Progress: " + strings.Join(parts, " · ")
}
