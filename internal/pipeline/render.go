package pipeline

import (
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// Options carries everything RenderSequence reads besides the tree
type Options struct {
	Config    model.Config
	Editing   bool
	Collapsed CollapseLookup
	Registry  iconset.Registry
}

// RenderSequence runs the whole pipeline: visibility filter (presentation
// only), status filter, status grouping and flatten. It never fails; bad
// input degrades to "no status".
func RenderSequence(items []*model.ListItem, opts Options) []FlatListItem {
	cfg := opts.Config.Normalize()
	tree := Transform(items, cfg, opts.Editing, opts.Registry)
	return Flatten(tree, cfg, opts.Collapsed)
}

// Transform applies the tree stages of RenderSequence without flattening
func Transform(items []*model.ListItem, cfg model.Config, editing bool, reg iconset.Registry) []*model.ListItem {
	tree := items
	if !editing {
		tree = FilterVisible(tree)
	}
	tree = FilterStatuses(tree, cfg.FilterByStatuses)
	if cfg.GroupByStatus {
		tree = GroupByStatus(tree, reg, cfg.IconSetID)
	}
	return tree
}
