package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatAuto         ImportFormat = "auto" // Auto-detect from extension
)

// Insert modes for merging imported items into an existing list
const (
	InsertAppend  = "append"
	InsertPrepend = "prepend"
	InsertReplace = "replace"
)

// ImportOptions configures how files are imported
type ImportOptions struct {
	Format     ImportFormat
	IconSetID  string // set used for [status] prefixes, defaults to the status set
	InsertMode string // "append", "prepend", "replace"
}

// Parser interface for different import formats
type Parser interface {
	Parse(content string) ([]*model.ListItem, error)
	Name() string
}

// ImportFile parses content and returns the root items
func ImportFile(content string, opts ImportOptions) ([]*model.ListItem, error) {
	setID := opts.IconSetID
	if setID == "" {
		setID = model.DefaultIconSetID
	}

	var parser Parser
	switch opts.Format {
	case FormatMarkdown:
		parser = &MarkdownParser{IconSetID: setID}
	case FormatIndentedText:
		parser = &IndentedTextParser{IconSetID: setID}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", opts.Format)
	}

	items, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return items, nil
}

// DetectFormat attempts to detect the file format from extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatIndentedText
}

// Insert combines imported items with the existing top level. The result is
// a new slice; existing items are shared.
func Insert(existing, imported []*model.ListItem, mode string) ([]*model.ListItem, error) {
	out := make([]*model.ListItem, 0, len(existing)+len(imported))
	switch mode {
	case InsertAppend, "":
		out = append(out, existing...)
		out = append(out, imported...)
	case InsertPrepend:
		out = append(out, imported...)
		out = append(out, existing...)
	case InsertReplace:
		out = append(out, imported...)
	default:
		return nil, fmt.Errorf("unknown insert mode: %s", mode)
	}
	return out, nil
}

// treeBuilder attaches items to the last open item one level up
type treeBuilder struct {
	roots []*model.ListItem
	stack []frame
	last  *model.ListItem
}

type frame struct {
	level int
	item  *model.ListItem
}

// add places item at level. Headers never become parents.
func (b *treeBuilder) add(level int, item *model.ListItem) {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) == 0 {
		b.roots = append(b.roots, item)
	} else {
		parent := b.stack[len(b.stack)-1].item
		parent.Children = append(parent.Children, item)
	}
	if !item.IsHeader {
		b.stack = append(b.stack, frame{level: level, item: item})
	}
	b.last = item
}

// addDetail appends a line of detail text to the last item
func (b *treeBuilder) addDetail(line string) bool {
	if b.last == nil || b.last.IsHeader {
		return false
	}
	if b.last.Detail == "" {
		b.last.Detail = line
	} else {
		b.last.Detail += "\n" + line
	}
	return true
}

// decorate reads the inline markers of an item text: a leading [status]
// sets the primary icon.
func decorate(text, setID string) *model.ListItem {
	item := model.NewItem(text)
	if strings.HasPrefix(text, "[") {
		if end := strings.Index(text, "]"); end > 1 {
			status := strings.TrimSpace(text[1:end])
			if status != "" && !strings.ContainsAny(status, " \t") {
				item.PrimaryIcon = &model.IconRef{SetID: setID, IconID: status}
				item.Text = strings.TrimSpace(text[end+1:])
			}
		}
	}
	return item
}

// getIndentLevel calculates the indentation level (0-based)
// Counts tabs and spaces (tab = 2 spaces)
func getIndentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent / 2
}
