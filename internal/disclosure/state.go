package disclosure

import (
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
)

// Opacity levels a renderer maps to its own styles
const (
	OpacityHidden = 0.0
	OpacityDimmed = 0.4
	OpacityFull   = 1.0
)

// State is the reveal overlay for one render sequence
type State struct {
	Step        int
	RevealedIDs map[string]bool
	FocusedID   string

	all bool
	dim bool
}

// IsRevealed reports whether the row with id is shown at all
func (s State) IsRevealed(id string) bool {
	return s.all || s.RevealedIDs[id]
}

// IsFocused reports whether id is the current step's item
func (s State) IsFocused(id string) bool {
	return s.FocusedID != "" && s.FocusedID == id
}

// Opacity returns how strongly a row is drawn. In focus mode revealed items
// other than the focused one are dimmed; headers never are.
func (s State) Opacity(row pipeline.FlatListItem) float64 {
	id := row.Item.ID
	if !s.IsRevealed(id) {
		return OpacityHidden
	}
	if s.dim && !row.Item.IsHeader && !s.IsFocused(id) {
		return OpacityDimmed
	}
	return OpacityFull
}

func revealAll() State {
	return State{all: true}
}

// compute derives the reveal state of seq at step for mode
func compute(seq []pipeline.FlatListItem, mode model.RevealMode, step int) State {
	sections, owner := splitSections(seq)
	if len(sections) == 0 {
		return revealAll()
	}

	st := State{
		Step:        step,
		RevealedIDs: make(map[string]bool),
		dim:         mode == model.RevealOneByOneFocus,
	}
	sectionShown := make([]bool, len(sections))

	switch mode {
	case model.RevealOneByOneFocus, model.RevealOneByOneAccumulate:
		pos := 0
		for idx, row := range seq {
			if row.Item.IsHeader {
				continue
			}
			if pos <= step {
				st.RevealedIDs[row.Item.ID] = true
				sectionShown[owner[idx]] = true
			}
			if pos == step {
				st.FocusedID = row.Item.ID
			}
			pos++
		}
	case model.RevealBySection:
		for s := 0; s <= step && s < len(sections); s++ {
			sectionShown[s] = true
			for _, idx := range sections[s].items {
				st.RevealedIDs[seq[idx].Item.ID] = true
			}
		}
		if step < len(sections) {
			st.FocusedID = seq[sections[step].items[0]].Item.ID
		}
	default:
		return revealAll()
	}

	for s, sec := range sections {
		if !sectionShown[s] {
			continue
		}
		for _, idx := range sec.headers {
			st.RevealedIDs[seq[idx].Item.ID] = true
		}
	}
	revealAncestorHeaders(seq, st.RevealedIDs)
	return st
}

// revealAncestorHeaders reveals every header that is an ancestor of a
// revealed row
func revealAncestorHeaders(seq []pipeline.FlatListItem, revealed map[string]bool) {
	byID := make(map[string]pipeline.FlatListItem, len(seq))
	for _, row := range seq {
		byID[row.Item.ID] = row
	}
	for _, row := range seq {
		if !revealed[row.Item.ID] {
			continue
		}
		parent, ok := byID[row.ParentID]
		// duplicate ids can make the parent chain cyclic
		for hops := 0; ok && hops < len(seq); hops++ {
			if parent.Item.IsHeader {
				revealed[parent.Item.ID] = true
			}
			parent, ok = byID[parent.ParentID]
		}
	}
}
