// Package pipeline turns a list tree into the flat, numbered sequence that
// renderers draw, and aggregates progress over the tree.
package pipeline

import "github.com/pstuifzand/tui-smartlist/internal/model"

// FlatListItem is one render-ready row
type FlatListItem struct {
	Item        *model.ListItem
	Depth       int
	FlatIndex   int
	NumberLabel string
	ParentID    string
	HasChildren bool
	Collapsed   bool
}

// LeadsWithNumber reports whether the number is drawn in place of an icon
func (f FlatListItem) LeadsWithNumber() bool {
	return f.NumberLabel != "" && f.Item.PrimaryIcon == nil
}

// Hidden reports whether the row is only shown because editing mode keeps
// invisible items around
func (f FlatListItem) Hidden() bool {
	return !f.Item.IsVisible()
}

// CollapseLookup answers whether a parent is collapsed. collapse.State
// implements it.
type CollapseLookup interface {
	IsCollapsed(id string) bool
}

// Flatten linearizes the tree depth-first in pre-order. Counters are local
// to each sibling list and only count non-header items. The children of
// collapsed items are skipped.
func Flatten(items []*model.ListItem, cfg model.Config, collapsed CollapseLookup) []FlatListItem {
	var out []FlatListItem
	var walk func(list []*model.ListItem, depth int, parentID string)
	walk = func(list []*model.ListItem, depth int, parentID string) {
		format := FormatForDepth(cfg, depth)
		counter := 0
		for _, item := range list {
			if item == nil {
				continue
			}
			row := FlatListItem{
				Item:        item,
				Depth:       depth,
				FlatIndex:   len(out),
				ParentID:    parentID,
				HasChildren: item.HasChildren(),
			}
			if !item.IsHeader {
				counter++
				if cfg.ShowNumbering {
					row.NumberLabel = FormatNumber(format, counter)
				}
			}
			if row.HasChildren && collapsed != nil && collapsed.IsCollapsed(item.ID) {
				row.Collapsed = true
			}
			out = append(out, row)
			if row.HasChildren && !row.Collapsed {
				walk(item.Children, depth+1, item.ID)
			}
		}
	}
	walk(items, 0, "")
	return out
}
