package disclosure

import "github.com/pstuifzand/tui-smartlist/internal/pipeline"

// section is a run of non-header rows between headers, plus the headers
// that introduce it
type section struct {
	headers []int
	items   []int
}

// splitSections groups the rows of seq into sections. Sections follow the
// flattened order, so a header nested under an item also starts one.
// Consecutive headers share a section and trailing headers join the last.
// The second result maps every row to its section (-1 when there are no
// sections at all).
func splitSections(seq []pipeline.FlatListItem) ([]section, []int) {
	var sections []section
	owner := make([]int, len(seq))
	var pending []int

	for idx, row := range seq {
		if row.Item.IsHeader {
			pending = append(pending, idx)
			continue
		}
		if len(pending) > 0 || len(sections) == 0 {
			sections = append(sections, section{headers: pending})
			pending = nil
		}
		cur := len(sections) - 1
		sections[cur].items = append(sections[cur].items, idx)
	}
	if len(pending) > 0 && len(sections) > 0 {
		last := len(sections) - 1
		sections[last].headers = append(sections[last].headers, pending...)
		pending = nil
	}

	for idx := range owner {
		owner[idx] = -1
	}
	for s, sec := range sections {
		for _, idx := range sec.headers {
			owner[idx] = s
		}
		for _, idx := range sec.items {
			owner[idx] = s
		}
	}
	return sections, owner
}
