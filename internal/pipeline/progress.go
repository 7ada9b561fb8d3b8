package pipeline

import (
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// NoIconLabel labels the progress segment of items without a known icon
const NoIconLabel = "No Icon"

// Segment is the count of one status
type Segment struct {
	IconID string
	Label  string
	Color  string
	Count  int
}

// Progress summarizes the statuses of a tree
type Progress struct {
	Segments []Segment
	Total    int
}

// Empty reports whether there is nothing to summarize
func (p Progress) Empty() bool {
	return p.Total == 0
}

// Fraction returns the share of the segment with iconID, in [0, 1]
func (p Progress) Fraction(iconID string) float64 {
	if p.Total == 0 {
		return 0
	}
	for _, s := range p.Segments {
		if s.IconID == iconID {
			return float64(s.Count) / float64(p.Total)
		}
	}
	return 0
}

// ComputeProgress counts every non-header item of the unfiltered tree by
// status, collapsed subtrees included. Segments follow the icon set order
// with the no-icon bucket last.
func ComputeProgress(items []*model.ListItem, setID string, reg iconset.Registry) Progress {
	set, ok := lookupSet(reg, setID)
	counts := make(map[string]int)
	total := 0
	model.Walk(items, func(item *model.ListItem, _ int) bool {
		if !item.IsHeader {
			counts[statusKey(set, ok, item)]++
			total++
		}
		return true
	})

	var p Progress
	p.Total = total
	if total == 0 {
		return p
	}
	if ok {
		for _, e := range set.Entries {
			if counts[e.ID] == 0 {
				continue
			}
			p.Segments = append(p.Segments, Segment{
				IconID: e.ID,
				Label:  e.Label,
				Color:  e.Color,
				Count:  counts[e.ID],
			})
		}
	}
	if n := counts[NoStatusID]; n > 0 {
		p.Segments = append(p.Segments, Segment{IconID: NoStatusID, Label: NoIconLabel, Count: n})
	}
	return p
}
