// Package smartlist combines the list engine into one session object that
// a host drives: it owns the UI side-tables (collapse flags, open detail,
// disclosure step) and routes every tree edit through OnDataChange.
package smartlist

import (
	"github.com/pstuifzand/tui-smartlist/internal/accordion"
	"github.com/pstuifzand/tui-smartlist/internal/collapse"
	"github.com/pstuifzand/tui-smartlist/internal/disclosure"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/mutate"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
)

// DataChangeFunc receives every proposed tree. Returning false rejects the
// edit and the session keeps its current tree.
type DataChangeFunc func(items []*model.ListItem) bool

// Session is the state of one list on screen
type Session struct {
	items     []*model.ListItem
	config    model.Config
	registry  iconset.Registry
	editing   bool
	collapsed collapse.State
	details   accordion.Controller
	machine   *disclosure.Machine

	// OnDataChange is called with every new tree before it is adopted
	OnDataChange DataChangeFunc
}

// NewSession creates a session over items
func NewSession(items []*model.ListItem, cfg model.Config, reg iconset.Registry) *Session {
	cfg = cfg.Normalize()
	s := &Session{
		items:     items,
		config:    cfg,
		registry:  reg,
		collapsed: collapse.Initialize(items, cfg.CollapseDefault),
		machine:   disclosure.NewMachine(cfg.RevealMode),
	}
	s.refresh()
	return s
}

// Items returns the current tree
func (s *Session) Items() []*model.ListItem {
	return s.items
}

// Config returns the normalized configuration
func (s *Session) Config() model.Config {
	return s.config
}

// Registry returns the icon registry
func (s *Session) Registry() iconset.Registry {
	return s.registry
}

// Editing reports whether the session is in editing mode
func (s *Session) Editing() bool {
	return s.editing
}

// Machine exposes the disclosure machine for key handling and overrides
func (s *Session) Machine() *disclosure.Machine {
	return s.machine
}

// SetEditing switches between editing and presenting
func (s *Session) SetEditing(editing bool) {
	s.editing = editing
	s.machine.SetEditing(editing)
	s.refresh()
}

// SetConfig replaces the configuration. Collapse flags are kept; the
// reveal mode follows the new config.
func (s *Session) SetConfig(cfg model.Config) {
	s.config = cfg.Normalize()
	s.machine.SetMode(s.config.RevealMode)
	s.refresh()
}

// SetItems adopts a tree from the host without calling OnDataChange, for
// instance after undo or an external reload
func (s *Session) SetItems(items []*model.ListItem) {
	s.items = items
	s.collapsed = collapse.Sync(s.collapsed, items, s.config.CollapseDefault)
	s.details.Prune(items)
	s.refresh()
}

// Render returns the current render sequence
func (s *Session) Render() []pipeline.FlatListItem {
	return pipeline.RenderSequence(s.items, s.options())
}

// Reveal returns the disclosure overlay for the current render sequence
func (s *Session) Reveal() disclosure.State {
	return s.machine.State()
}

// Progress returns the status summary of the whole tree
func (s *Session) Progress() pipeline.Progress {
	return pipeline.ComputeProgress(s.items, s.config.IconSetID, s.registry)
}

// Collapsed returns the collapse side-table
func (s *Session) Collapsed() collapse.State {
	return s.collapsed
}

// ToggleCollapsed flips one parent
func (s *Session) ToggleCollapsed(id string) {
	s.collapsed = collapse.Toggle(s.collapsed, id)
	s.refresh()
}

// SetAllCollapsed collapses or expands every parent
func (s *Session) SetAllCollapsed(collapsed bool) {
	s.collapsed = collapse.SetAll(s.collapsed, collapsed)
	s.refresh()
}

// ToggleDetail opens or closes the detail of id
func (s *Session) ToggleDetail(id string) {
	s.details.Toggle(s.items, id, s.config.DetailMode)
}

// ExpandedDetail returns the id whose detail is open
func (s *Session) ExpandedDetail() string {
	return s.details.ExpandedID()
}

// Next advances the disclosure
func (s *Session) Next() bool {
	return s.machine.Next()
}

// Prev steps the disclosure back
func (s *Session) Prev() bool {
	return s.machine.Prev()
}

// SetText changes the text of id
func (s *Session) SetText(id, text string) bool {
	return s.apply(mutate.SetText(s.items, id, text))
}

// SetDescription changes the secondary text of id
func (s *Session) SetDescription(id, text string) bool {
	return s.apply(mutate.SetDescription(s.items, id, text))
}

// SetDetail changes the detail text of id
func (s *Session) SetDetail(id, text string) bool {
	return s.apply(mutate.SetDetail(s.items, id, text))
}

// SetPrimaryIcon changes the status icon of id
func (s *Session) SetPrimaryIcon(id string, ref *model.IconRef) bool {
	return s.apply(mutate.SetPrimaryIcon(s.items, id, ref))
}

// SetSecondaryIcon changes the secondary icon of id
func (s *Session) SetSecondaryIcon(id string, ref *model.IconRef) bool {
	return s.apply(mutate.SetSecondaryIcon(s.items, id, ref))
}

// CycleStatus moves the primary icon of id to the next entry of the
// configured icon set, then back to no icon
func (s *Session) CycleStatus(id string) bool {
	item := model.FindItemByID(s.items, id)
	if item == nil || item.IsHeader || s.registry == nil {
		return false
	}
	set, ok := s.registry.IconSet(s.config.IconSetID)
	if !ok || len(set.Entries) == 0 {
		return false
	}
	next := 0
	if item.PrimaryIcon != nil && item.PrimaryIcon.SetID == set.ID {
		next = set.Index(item.PrimaryIcon.IconID) + 1
	}
	if next >= len(set.Entries) {
		return s.SetPrimaryIcon(id, nil)
	}
	return s.SetPrimaryIcon(id, &model.IconRef{SetID: set.ID, IconID: set.Entries[next].ID})
}

// SetFields replaces every editable value of id as one change
func (s *Session) SetFields(id string, f mutate.Fields) bool {
	return s.apply(mutate.SetFields(s.items, id, f))
}

// SetVisible shows or hides id in presentation
func (s *Session) SetVisible(id string, visible bool) bool {
	return s.apply(mutate.SetVisible(s.items, id, visible))
}

// SetAllVisible shows or hides every item
func (s *Session) SetAllVisible(visible bool) bool {
	return s.apply(mutate.SetAllVisible(s.items, visible))
}

// ShowOnlyStatus hides every item whose status is not iconID
func (s *Session) ShowOnlyStatus(iconID string) bool {
	return s.apply(mutate.ShowOnlyStatus(s.items, iconID))
}

// InsertAfter adds item as the next sibling of id
func (s *Session) InsertAfter(id string, item *model.ListItem) bool {
	return s.apply(mutate.InsertAfter(s.items, id, item))
}

// InsertChild adds item as the last child of id and expands id
func (s *Session) InsertChild(id string, item *model.ListItem) bool {
	if !s.apply(mutate.InsertChild(s.items, id, item)) {
		return false
	}
	if s.collapsed.IsCollapsed(id) {
		s.ToggleCollapsed(id)
	}
	return true
}

// Append adds item at the end of the top level
func (s *Session) Append(item *model.ListItem) bool {
	next := make([]*model.ListItem, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	return s.apply(next, true)
}

// DeleteIfEmpty removes id when it has no text and returns the id that
// should receive focus
func (s *Session) DeleteIfEmpty(id string) (string, bool) {
	items, focusID, changed := mutate.DeleteIfEmpty(s.items, id)
	if !s.apply(items, changed) {
		return "", false
	}
	return focusID, true
}

// ReorderTopLevel moves a top-level item to the position of another
func (s *Session) ReorderTopLevel(fromID, toID string) bool {
	return s.apply(mutate.ReorderTopLevel(s.items, fromID, toID))
}

func (s *Session) apply(items []*model.ListItem, changed bool) bool {
	if !changed {
		return false
	}
	if s.OnDataChange != nil && !s.OnDataChange(items) {
		return false
	}
	s.SetItems(items)
	return true
}

func (s *Session) options() pipeline.Options {
	return pipeline.Options{
		Config:    s.config,
		Editing:   s.editing,
		Collapsed: s.collapsed,
		Registry:  s.registry,
	}
}

func (s *Session) refresh() {
	s.machine.SetSequence(s.Render())
}
