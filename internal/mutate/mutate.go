// Package mutate rewrites list trees. Every operation returns a new tree and
// leaves its input untouched; subtrees off the edited path are shared
// between the two versions. An id that matches nothing returns the input
// tree and changed=false.
package mutate

import "github.com/pstuifzand/tui-smartlist/internal/model"

// update finds id anywhere in the tree and replaces it with fn's result.
// Nodes on the path to it are copied, everything else is shared.
func update(items []*model.ListItem, id string, fn func(*model.ListItem) *model.ListItem) ([]*model.ListItem, bool) {
	for idx, item := range items {
		if item == nil {
			continue
		}
		if item.ID == id {
			next := fn(item)
			if next == item {
				return items, false
			}
			return replaceAt(items, idx, next), true
		}
		if !item.HasChildren() {
			continue
		}
		children, changed := update(item.Children, id, fn)
		if changed {
			c := item.Clone()
			c.Children = children
			return replaceAt(items, idx, c), true
		}
	}
	return items, false
}

// updateAll applies fn to every item. fn returns its argument to leave an
// item alone.
func updateAll(items []*model.ListItem, fn func(*model.ListItem) *model.ListItem) ([]*model.ListItem, bool) {
	var out []*model.ListItem
	for idx, item := range items {
		if item == nil {
			continue
		}
		next := fn(item)
		if next.HasChildren() {
			children, changed := updateAll(next.Children, fn)
			if changed {
				if next == item {
					next = item.Clone()
				}
				next.Children = children
			}
		}
		if next != item && out == nil {
			out = make([]*model.ListItem, len(items))
			copy(out, items)
		}
		if out != nil {
			out[idx] = next
		}
	}
	if out == nil {
		return items, false
	}
	return out, true
}

func replaceAt(items []*model.ListItem, idx int, item *model.ListItem) []*model.ListItem {
	out := make([]*model.ListItem, len(items))
	copy(out, items)
	out[idx] = item
	return out
}

// SetText replaces the text of id
func SetText(items []*model.ListItem, id, text string) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if item.Text == text {
			return item
		}
		c := item.Clone()
		c.Text = text
		return c
	})
}

// SetDescription replaces the short secondary text of id
func SetDescription(items []*model.ListItem, id, description string) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if item.Description == description {
			return item
		}
		c := item.Clone()
		c.Description = description
		return c
	})
}

// SetDetail replaces the long-form detail text of id
func SetDetail(items []*model.ListItem, id, detail string) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if item.Detail == detail {
			return item
		}
		c := item.Clone()
		c.Detail = detail
		return c
	})
}

// SetPrimaryIcon sets or, with a nil ref, clears the primary icon of id
func SetPrimaryIcon(items []*model.ListItem, id string, ref *model.IconRef) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if sameRef(item.PrimaryIcon, ref) {
			return item
		}
		c := item.Clone()
		c.PrimaryIcon = copyRef(ref)
		return c
	})
}

// SetSecondaryIcon sets or, with a nil ref, clears the secondary icon of id
func SetSecondaryIcon(items []*model.ListItem, id string, ref *model.IconRef) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if sameRef(item.SecondaryIcon, ref) {
			return item
		}
		c := item.Clone()
		c.SecondaryIcon = copyRef(ref)
		return c
	})
}

// SetVisible shows or hides id in presentation mode. Headers ignore it.
func SetVisible(items []*model.ListItem, id string, visible bool) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		return withVisible(item, visible)
	})
}

// SetAllVisible shows or hides every non-header item
func SetAllVisible(items []*model.ListItem, visible bool) ([]*model.ListItem, bool) {
	return updateAll(items, func(item *model.ListItem) *model.ListItem {
		return withVisible(item, visible)
	})
}

// ShowOnlyStatus makes the items whose primary icon is iconID visible and
// hides all other non-header items
func ShowOnlyStatus(items []*model.ListItem, iconID string) ([]*model.ListItem, bool) {
	return updateAll(items, func(item *model.ListItem) *model.ListItem {
		return withVisible(item, item.PrimaryIcon != nil && item.PrimaryIcon.IconID == iconID)
	})
}

// SetCollapsed stores an explicit collapse default on id
func SetCollapsed(items []*model.ListItem, id string, collapsed bool) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if item.Collapsed != nil && *item.Collapsed == collapsed {
			return item
		}
		c := item.Clone()
		c.Collapsed = model.Bool(collapsed)
		return c
	})
}

// Fields are the user-editable values of an item
type Fields struct {
	Text        string
	Description string
	Detail      string
	PrimaryIcon *model.IconRef
	Visible     bool
}

// FieldsOf returns the editable values of item
func FieldsOf(item *model.ListItem) Fields {
	return Fields{
		Text:        item.Text,
		Description: item.Description,
		Detail:      item.Detail,
		PrimaryIcon: copyRef(item.PrimaryIcon),
		Visible:     item.IsVisible(),
	}
}

// SetFields replaces all editable values of id at once. Visible is ignored
// for headers.
func SetFields(items []*model.ListItem, id string, f Fields) ([]*model.ListItem, bool) {
	return update(items, id, func(item *model.ListItem) *model.ListItem {
		if item.IsHeader {
			f.Visible = true
		}
		if f.Text == item.Text && f.Description == item.Description && f.Detail == item.Detail &&
			sameRef(f.PrimaryIcon, item.PrimaryIcon) && f.Visible == item.IsVisible() {
			return item
		}
		c := withVisible(item, f.Visible)
		if c == item {
			c = item.Clone()
		}
		c.Text = f.Text
		c.Description = f.Description
		c.Detail = f.Detail
		c.PrimaryIcon = copyRef(f.PrimaryIcon)
		return c
	})
}

func withVisible(item *model.ListItem, visible bool) *model.ListItem {
	if item.IsHeader || item.IsVisible() == visible {
		return item
	}
	c := item.Clone()
	if visible {
		c.Visible = nil
	} else {
		c.Visible = model.Bool(false)
	}
	return c
}

func sameRef(a, b *model.IconRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyRef(ref *model.IconRef) *model.IconRef {
	if ref == nil {
		return nil
	}
	r := *ref
	return &r
}
