package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// IndentedTextParser imports plain text files with indentation-based hierarchy.
//
//	# Section        header
//	[done] Task      item with a status
//	  Subtask        child of Task
//	  > more text    detail of Subtask
type IndentedTextParser struct {
	IconSetID string
}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to list items
func (p *IndentedTextParser) Parse(content string) ([]*model.ListItem, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var b treeBuilder
	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, ">") {
			if b.addDetail(strings.TrimSpace(text[1:])) {
				continue
			}
		}

		level := getIndentLevel(line)
		if strings.HasPrefix(text, "# ") {
			b.add(level, model.NewHeader(strings.TrimSpace(text[2:])))
			continue
		}
		b.add(level, decorate(text, p.IconSetID))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.roots, nil
}
