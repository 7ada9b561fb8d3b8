// Package collapse keeps the expand/collapse flags of list parents. The
// flags live beside the tree, keyed by item id, never inside it.
package collapse

import "github.com/pstuifzand/tui-smartlist/internal/model"

// State maps the id of every parent to true when it is collapsed
type State map[string]bool

// Initialize seeds a state for every item with children. An explicit
// Collapsed field wins over the policy.
func Initialize(items []*model.ListItem, policy model.CollapseDefault) State {
	s := make(State)
	seed(s, items, policy, false)
	return s
}

// Sync adds entries for parents that are not in s yet, for instance after a
// mutation gave an item its first child. Existing entries are kept.
func Sync(s State, items []*model.ListItem, policy model.CollapseDefault) State {
	out := s.clone()
	seed(out, items, policy, true)
	return out
}

func seed(s State, items []*model.ListItem, policy model.CollapseDefault, keepExisting bool) {
	// leading headers without children join section 0, so the first
	// section with content is always 0
	sections := model.SectionIndexes(items)

	for idx, item := range items {
		if item == nil {
			continue
		}
		inFirst := sections[idx] == 0
		model.Walk([]*model.ListItem{item}, func(node *model.ListItem, depth int) bool {
			if !node.HasChildren() {
				return true
			}
			if _, ok := s[node.ID]; ok && keepExisting {
				return true
			}
			if node.Collapsed != nil {
				s[node.ID] = *node.Collapsed
			} else {
				s[node.ID] = defaultFor(policy, depth, inFirst)
			}
			return true
		})
	}
}

func defaultFor(policy model.CollapseDefault, depth int, inFirstSection bool) bool {
	switch policy {
	case model.CollapseAllCollapsed:
		return true
	case model.CollapseTopLevelOnly:
		return depth > 0
	case model.CollapseFirstExpanded:
		return !inFirstSection
	}
	return false
}

// Toggle flips the flag of id. Unknown ids leave the state unchanged.
func Toggle(s State, id string) State {
	cur, ok := s[id]
	if !ok {
		return s
	}
	out := s.clone()
	out[id] = !cur
	return out
}

// SetAll sets every known flag to collapsed
func SetAll(s State, collapsed bool) State {
	out := make(State, len(s))
	for id := range s {
		out[id] = collapsed
	}
	return out
}

// IsCollapsed reports whether id is a collapsed parent
func (s State) IsCollapsed(id string) bool {
	return s[id]
}

// Known reports whether id has an entry
func (s State) Known(id string) bool {
	_, ok := s[id]
	return ok
}

func (s State) clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
