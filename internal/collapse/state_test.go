package collapse

import (
	"testing"

	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/stretchr/testify/assert"
)

func node(id string, children ...*model.ListItem) *model.ListItem {
	return &model.ListItem{ID: id, Text: id, Children: children}
}

func head(id string) *model.ListItem {
	return &model.ListItem{ID: id, Text: id, IsHeader: true}
}

func sampleTree() []*model.ListItem {
	return []*model.ListItem{
		node("a", node("a1", node("a1x"))),
		node("b", node("b1")),
		head("h"),
		node("c", node("c1")),
		node("leaf"),
	}
}

func TestInitializePolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy model.CollapseDefault
		want   State
	}{
		{"all expanded", model.CollapseAllExpanded, State{"a": false, "a1": false, "b": false, "c": false}},
		{"all collapsed", model.CollapseAllCollapsed, State{"a": true, "a1": true, "b": true, "c": true}},
		{"top level only", model.CollapseTopLevelOnly, State{"a": false, "a1": true, "b": false, "c": false}},
		{"first expanded", model.CollapseFirstExpanded, State{"a": false, "a1": false, "b": false, "c": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initialize(sampleTree(), tt.policy))
		})
	}
}

func TestFirstExpandedSkipsLeadingHeaders(t *testing.T) {
	tree := []*model.ListItem{head("h0"), node("x", node("x1")), head("h1"), node("y", node("y1"))}

	s := Initialize(tree, model.CollapseFirstExpanded)

	assert.False(t, s.IsCollapsed("x"))
	assert.True(t, s.IsCollapsed("y"))
}

func TestFirstExpandedWithHeaderOwnedSections(t *testing.T) {
	h1 := head("h1")
	h1.Children = []*model.ListItem{node("a", node("a1"))}
	h2 := head("h2")
	h2.Children = []*model.ListItem{node("b", node("b1"))}

	s := Initialize([]*model.ListItem{h1, h2}, model.CollapseFirstExpanded)

	assert.Equal(t, State{"h1": false, "a": false, "h2": true, "b": true}, s)
}

func TestExplicitCollapsedWins(t *testing.T) {
	tree := sampleTree()
	tree[0].Collapsed = model.Bool(true)
	tree[1].Collapsed = model.Bool(false)

	s := Initialize(tree, model.CollapseAllCollapsed)

	assert.True(t, s.IsCollapsed("a"))
	assert.False(t, s.IsCollapsed("b"))
}

func TestToggle(t *testing.T) {
	s := Initialize(sampleTree(), model.CollapseAllExpanded)

	next := Toggle(s, "b")

	assert.True(t, next.IsCollapsed("b"))
	assert.False(t, s.IsCollapsed("b"), "original state must not change")
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s := Initialize(sampleTree(), model.CollapseAllExpanded)

	assert.Equal(t, s, Toggle(s, "leaf"))
	assert.Equal(t, s, Toggle(s, "missing"))
}

func TestSyncKeepsExistingEntries(t *testing.T) {
	s := Toggle(Initialize(sampleTree(), model.CollapseAllExpanded), "a")
	tree := sampleTree()
	tree[4] = node("leaf", node("new-child"))

	synced := Sync(s, tree, model.CollapseAllCollapsed)

	assert.True(t, synced.IsCollapsed("a"))
	assert.False(t, synced.IsCollapsed("b"))
	assert.True(t, synced.Known("leaf"))
	assert.True(t, synced.IsCollapsed("leaf"))
}

func TestSetAll(t *testing.T) {
	s := SetAll(Initialize(sampleTree(), model.CollapseAllExpanded), true)

	for id, collapsed := range s {
		if !collapsed {
			t.Errorf("Expected %s to be collapsed", id)
		}
	}
}
