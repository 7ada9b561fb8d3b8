package mutate

import (
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// InsertAfter inserts newItem as the next sibling of id, at the same depth
func InsertAfter(items []*model.ListItem, id string, newItem *model.ListItem) ([]*model.ListItem, bool) {
	if newItem == nil {
		return items, false
	}
	return editSiblings(items, id, func(siblings []*model.ListItem, idx int) []*model.ListItem {
		out := make([]*model.ListItem, 0, len(siblings)+1)
		out = append(out, siblings[:idx+1]...)
		out = append(out, newItem)
		out = append(out, siblings[idx+1:]...)
		return out
	})
}

// InsertChild appends newItem as the last child of id
func InsertChild(items []*model.ListItem, id string, newItem *model.ListItem) ([]*model.ListItem, bool) {
	if newItem == nil {
		return items, false
	}
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		c := item.Clone()
		c.Children = make([]*model.ListItem, 0, len(item.Children)+1)
		c.Children = append(c.Children, item.Children...)
		c.Children = append(c.Children, newItem)
		return c
	})
}

// DeleteIfEmpty removes id when its text is empty and it has no children,
// as the editor does on backspace in an empty row. Whitespace counts as
// text. focusID is the previous sibling, or "" when id was the first.
func DeleteIfEmpty(items []*model.ListItem, id string) (out []*model.ListItem, focusID string, changed bool) {
	out, changed = editSiblings(items, id, func(siblings []*model.ListItem, idx int) []*model.ListItem {
		if siblings[idx].Text != "" || siblings[idx].HasChildren() {
			return nil
		}
		if idx > 0 {
			focusID = siblings[idx-1].ID
		}
		next := make([]*model.ListItem, 0, len(siblings)-1)
		next = append(next, siblings[:idx]...)
		next = append(next, siblings[idx+1:]...)
		return next
	})
	if !changed {
		focusID = ""
	}
	return out, focusID, changed
}

// ReorderTopLevel moves the top-level item fromID to the position of the
// top-level item toID. Nested items are not reordered; any other id is a
// no-op.
func ReorderTopLevel(items []*model.ListItem, fromID, toID string) ([]*model.ListItem, bool) {
	from, to := -1, -1
	for idx, item := range items {
		if item == nil {
			continue
		}
		if item.ID == fromID && from < 0 {
			from = idx
		}
		if item.ID == toID && to < 0 {
			to = idx
		}
	}
	if from < 0 || to < 0 || from == to {
		return items, false
	}

	moved := items[from]
	out := make([]*model.ListItem, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	rest := out[to:]
	tail := make([]*model.ListItem, len(rest))
	copy(tail, rest)
	out = append(out[:to], moved)
	out = append(out, tail...)
	return out, true
}

// editSiblings finds the sibling list holding id and replaces it with fn's
// result. fn returning nil means no change.
func editSiblings(items []*model.ListItem, id string, fn func(siblings []*model.ListItem, idx int) []*model.ListItem) ([]*model.ListItem, bool) {
	for idx, item := range items {
		if item == nil {
			continue
		}
		if item.ID == id {
			next := fn(items, idx)
			if next == nil {
				return items, false
			}
			return next, true
		}
	}
	for idx, item := range items {
		if item == nil || !item.HasChildren() {
			continue
		}
		children, changed := editSiblings(item.Children, id, fn)
		if changed {
			c := item.Clone()
			c.Children = children
			return replaceAt(items, idx, c), true
		}
	}
	return items, false
}
