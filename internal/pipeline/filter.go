package pipeline

import "github.com/pstuifzand/tui-smartlist/internal/model"

// FilterVisible drops every non-header item marked invisible, together with
// its subtree. Used for presentation only; editing shows hidden items dimmed.
func FilterVisible(items []*model.ListItem) []*model.ListItem {
	return prune(items, func(item *model.ListItem) bool {
		return item.IsVisible()
	})
}

// FilterStatuses keeps headers and the items whose status is in allowed.
// An empty allowed list keeps everything.
func FilterStatuses(items []*model.ListItem, allowed []string) []*model.ListItem {
	if len(allowed) == 0 {
		return items
	}
	cfg := model.Config{FilterByStatuses: allowed}
	return prune(items, func(item *model.ListItem) bool {
		return item.IsHeader || cfg.StatusAllowed(item.Status())
	})
}

// prune keeps the items for which keep returns true, recursing into the
// children of kept items. Subtrees that lose nothing are shared with the input.
func prune(items []*model.ListItem, keep func(*model.ListItem) bool) []*model.ListItem {
	out := make([]*model.ListItem, 0, len(items))
	for _, item := range items {
		if item == nil || !keep(item) {
			continue
		}
		if !item.HasChildren() {
			out = append(out, item)
			continue
		}
		children := prune(item.Children, keep)
		if len(children) == len(item.Children) && sameItems(children, item.Children) {
			out = append(out, item)
			continue
		}
		c := item.Clone()
		c.Children = children
		out = append(out, c)
	}
	return out
}

func sameItems(a, b []*model.ListItem) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
