package history

import "github.com/pstuifzand/tui-smartlist/internal/model"

// Snapshot is one version of the list. Trees are never mutated in place, so
// holding the root slice is enough to keep the whole version.
type Snapshot struct {
	Label string
	Items []*model.ListItem
}

// Stack keeps undo and redo snapshots
type Stack struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

// NewStack creates a stack remembering at most limit undo steps. A limit
// below one means unlimited.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// Push records the tree as it was before the edit named label. Any redo
// history is dropped.
func (s *Stack) Push(label string, before []*model.ListItem) {
	s.undo = append(s.undo, Snapshot{Label: label, Items: before})
	if s.limit > 0 && len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
}

// Undo returns the snapshot to restore and remembers current for Redo
func (s *Stack) Undo(current []*model.ListItem) (Snapshot, bool) {
	if len(s.undo) == 0 {
		return Snapshot{}, false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, Snapshot{Label: snap.Label, Items: current})
	return snap, true
}

// Redo returns the snapshot undone last and remembers current for Undo
func (s *Stack) Redo(current []*model.ListItem) (Snapshot, bool) {
	if len(s.redo) == 0 {
		return Snapshot{}, false
	}
	snap := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, Snapshot{Label: snap.Label, Items: current})
	return snap, true
}

// CanUndo reports whether there is anything to undo
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether there is anything to redo
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Clear forgets all snapshots, for instance after loading another file
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
