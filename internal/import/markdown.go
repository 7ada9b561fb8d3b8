package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// MarkdownParser imports markdown files. Headings of any level become
// headers, list items nest by indentation, task boxes map to done and todo,
// and block quotes become the detail of the item above.
type MarkdownParser struct {
	IconSetID string
}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to list items
func (p *MarkdownParser) Parse(content string) ([]*model.ListItem, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var b treeBuilder
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if text, ok := parseHeader(trimmed); ok {
			b.add(0, model.NewHeader(text))
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			if b.addDetail(strings.TrimSpace(trimmed[1:])) {
				continue
			}
		}

		if level, text, ok := parseListItem(line); ok {
			b.add(level, p.listItem(text))
			continue
		}

		// Plain paragraphs continue the detail of the last item, or stand
		// alone at the top level
		if !b.addDetail(trimmed) {
			b.add(0, decorate(trimmed, p.IconSetID))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.roots, nil
}

func (p *MarkdownParser) listItem(text string) *model.ListItem {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "[x] "):
		item := model.NewItem(strings.TrimSpace(text[4:]))
		item.PrimaryIcon = &model.IconRef{SetID: p.IconSetID, IconID: "done"}
		return item
	case strings.HasPrefix(text, "[ ] "):
		item := model.NewItem(strings.TrimSpace(text[4:]))
		item.PrimaryIcon = &model.IconRef{SetID: p.IconSetID, IconID: "todo"}
		return item
	}
	return decorate(text, p.IconSetID)
}

// parseHeader extracts the text of a markdown heading
func parseHeader(line string) (string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return "", false
	}
	return strings.TrimSpace(line[level:]), true
}

// parseListItem extracts indentation level and text from a bullet or
// numbered list item
func parseListItem(line string) (level int, text string, ok bool) {
	level = getIndentLevel(line)
	trimmed := strings.TrimSpace(line)

	if len(trimmed) > 2 && strings.ContainsRune("-*+", rune(trimmed[0])) && trimmed[1] == ' ' {
		return level, strings.TrimSpace(trimmed[2:]), true
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') && trimmed[digits+1] == ' ' {
		return level, strings.TrimSpace(trimmed[digits+2:]), true
	}

	return 0, "", false
}
