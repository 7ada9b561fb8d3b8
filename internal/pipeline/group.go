package pipeline

import (
	"fmt"

	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// NoStatusID is the bucket for items without a (known) status
const NoStatusID = ""

// NoStatusLabel labels the NoStatusID bucket
const NoStatusLabel = "No Status"

// GroupHeaderPrefix prefixes the ids of synthetic group headers
const GroupHeaderPrefix = "group:"

// GroupByStatus discards the existing headers and rebuilds the top level as
// one synthetic header per non-empty status bucket followed by its items.
// Buckets follow the declared order of the icon set; items keep document
// order inside a bucket and carry their children along. Children of
// discarded headers are grouped like top-level items.
func GroupByStatus(items []*model.ListItem, reg iconset.Registry, setID string) []*model.ListItem {
	set, ok := lookupSet(reg, setID)

	var flat []*model.ListItem
	var collect func(list []*model.ListItem)
	collect = func(list []*model.ListItem) {
		for _, item := range list {
			if item == nil {
				continue
			}
			if item.IsHeader {
				collect(item.Children)
				continue
			}
			flat = append(flat, item)
		}
	}
	collect(items)

	var order []string
	if ok {
		for _, e := range set.Entries {
			order = append(order, e.ID)
		}
	}
	order = append(order, NoStatusID)

	buckets := make(map[string][]*model.ListItem)
	for _, item := range flat {
		key := statusKey(set, ok, item)
		buckets[key] = append(buckets[key], item)
	}

	out := make([]*model.ListItem, 0, len(flat)+len(order))
	for _, key := range order {
		members := buckets[key]
		if len(members) == 0 {
			continue
		}
		label := NoStatusLabel
		if key != NoStatusID {
			label = iconset.StatusLabel(reg, setID, key)
		}
		out = append(out, &model.ListItem{
			ID:       GroupHeaderPrefix + key,
			Text:     fmt.Sprintf("%s (%d)", label, len(members)),
			IsHeader: true,
		})
		out = append(out, members...)
	}
	return out
}

// statusKey returns the bucket of item. A status the set does not declare
// counts as no status.
func statusKey(set *iconset.IconSet, ok bool, item *model.ListItem) string {
	status := item.Status()
	if status == "" || !ok || set.Index(status) < 0 {
		return NoStatusID
	}
	return status
}

func lookupSet(reg iconset.Registry, setID string) (*iconset.IconSet, bool) {
	if reg == nil {
		return nil, false
	}
	return reg.IconSet(setID)
}
