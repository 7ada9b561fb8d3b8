package disclosure

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(items ...*model.ListItem) []pipeline.FlatListItem {
	return pipeline.Flatten(items, model.Config{}, nil)
}

func it(id string, children ...*model.ListItem) *model.ListItem {
	return &model.ListItem{ID: id, Text: id, Children: children}
}

func hdr(id string, children ...*model.ListItem) *model.ListItem {
	return &model.ListItem{ID: id, Text: id, IsHeader: true, Children: children}
}

func rowByID(seq []pipeline.FlatListItem, id string) pipeline.FlatListItem {
	for _, row := range seq {
		if row.Item.ID == id {
			return row
		}
	}
	return pipeline.FlatListItem{}
}

func TestNextIsClampedAtMaxStep(t *testing.T) {
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seqOf(it("a"), it("b"), it("c")))

	for range 5 {
		m.Next()
	}

	assert.Equal(t, 2, m.Step())
	assert.Equal(t, 2, m.MaxStep())
}

func TestPrevIsClampedAtZero(t *testing.T) {
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seqOf(it("a"), it("b"), it("c")))

	assert.False(t, m.Prev())
	assert.Equal(t, 0, m.Step())
}

func TestFocusModeDimsEarlierItems(t *testing.T) {
	seq := seqOf(hdr("h"), it("a"), it("b"), it("c"))
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seq)
	m.Next()

	st := m.State()

	assert.Equal(t, "b", st.FocusedID)
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "h")))
	assert.Equal(t, OpacityDimmed, st.Opacity(rowByID(seq, "a")))
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "b")))
	assert.Equal(t, OpacityHidden, st.Opacity(rowByID(seq, "c")))
}

func TestAccumulateModeKeepsRevealedOpaque(t *testing.T) {
	seq := seqOf(it("a"), it("b"), it("c"))
	m := NewMachine(model.RevealOneByOneAccumulate)
	m.SetSequence(seq)
	m.Next()

	st := m.State()

	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "a")))
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "b")))
	assert.False(t, st.IsRevealed("c"))
}

func TestHeadersRevealedWithTheirSection(t *testing.T) {
	seq := seqOf(hdr("h1"), it("a"), hdr("h2"), it("b"))
	m := NewMachine(model.RevealOneByOneAccumulate)
	m.SetSequence(seq)

	st := m.State()
	assert.True(t, st.IsRevealed("h1"))
	assert.True(t, st.IsRevealed("a"))
	assert.False(t, st.IsRevealed("h2"))

	m.Next()
	st = m.State()
	assert.True(t, st.IsRevealed("h2"))
	assert.True(t, st.IsRevealed("b"))
}

func TestAncestorHeadersRevealed(t *testing.T) {
	seq := seqOf(hdr("outer", hdr("inner", it("x"))))
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seq)

	st := m.State()

	assert.True(t, st.IsRevealed("outer"))
	assert.True(t, st.IsRevealed("inner"))
	assert.Equal(t, "x", st.FocusedID)
}

func TestBySection(t *testing.T) {
	seq := seqOf(it("a0"), hdr("h1"), it("b0"), it("b1"), hdr("h2"), hdr("h3"), it("c0"))
	m := NewMachine(model.RevealBySection)
	m.SetSequence(seq)

	require.Equal(t, 2, m.MaxStep())

	st := m.State()
	assert.Equal(t, "a0", st.FocusedID)
	assert.False(t, st.IsRevealed("h1"))
	assert.False(t, st.IsRevealed("b0"))

	m.Next()
	st = m.State()
	assert.Equal(t, "b0", st.FocusedID)
	assert.True(t, st.IsRevealed("a0"))
	assert.True(t, st.IsRevealed("h1"))
	assert.True(t, st.IsRevealed("b1"))
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "a0")))
	assert.False(t, st.IsRevealed("h2"))

	m.Next()
	m.Next()
	st = m.State()
	assert.Equal(t, 2, m.Step())
	assert.True(t, st.IsRevealed("h2"))
	assert.True(t, st.IsRevealed("h3"))
	assert.Equal(t, "c0", st.FocusedID)
}

func TestNestedHeaderSplitsSections(t *testing.T) {
	seq := seqOf(it("a", hdr("sub"), it("a1")), it("b"))
	m := NewMachine(model.RevealBySection)
	m.SetSequence(seq)

	require.Equal(t, 1, m.MaxStep())

	st := m.State()
	assert.True(t, st.IsRevealed("a"))
	assert.False(t, st.IsRevealed("sub"))
	assert.False(t, st.IsRevealed("a1"))

	m.Next()
	st = m.State()
	assert.Equal(t, "a1", st.FocusedID)
	assert.True(t, st.IsRevealed("sub"))
	assert.True(t, st.IsRevealed("b"))
}

func TestTrailingHeaderJoinsLastSection(t *testing.T) {
	seq := seqOf(it("a"), hdr("end"))
	m := NewMachine(model.RevealBySection)
	m.SetSequence(seq)

	assert.Equal(t, 0, m.MaxStep())
	assert.True(t, m.State().IsRevealed("end"))
}

func TestAllAtOnceIsInert(t *testing.T) {
	seq := seqOf(it("a"), it("b"))
	m := NewMachine(model.RevealAllAtOnce)
	m.SetSequence(seq)

	assert.False(t, m.Next())
	st := m.State()
	assert.True(t, st.IsRevealed("b"))
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "a")))
}

func TestEditingDisablesStepping(t *testing.T) {
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seqOf(it("a"), it("b")))
	m.SetEditing(true)

	assert.False(t, m.Next())
	assert.Equal(t, 0, m.Step())
	assert.True(t, m.State().IsRevealed("b"))
}

func TestOverrideReplacesComputedState(t *testing.T) {
	seq := seqOf(it("a"), it("b"), it("c"))
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seq)
	m.Override(Override{FocusedID: "c", RevealedIDs: []string{"a", "c"}})

	assert.False(t, m.Next(), "stepping is disabled while overridden")
	st := m.State()
	assert.True(t, st.IsRevealed("a"))
	assert.False(t, st.IsRevealed("b"))
	assert.Equal(t, OpacityFull, st.Opacity(rowByID(seq, "c")))
	assert.Equal(t, OpacityDimmed, st.Opacity(rowByID(seq, "a")))

	m.Release()
	assert.True(t, m.Next())
}

func TestSequenceChangeClampsStep(t *testing.T) {
	m := NewMachine(model.RevealOneByOneAccumulate)
	m.SetSequence(seqOf(it("a"), it("b"), it("c")))
	m.Next()
	m.Next()

	m.SetSequence(seqOf(it("a")))

	assert.Equal(t, 0, m.Step())
}

func TestModeChangeRestarts(t *testing.T) {
	m := NewMachine(model.RevealOneByOneAccumulate)
	m.SetSequence(seqOf(it("a"), it("b")))
	m.Next()

	m.SetMode(model.RevealBySection)

	assert.Equal(t, 0, m.Step())
}

func TestEmptySequence(t *testing.T) {
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(nil)

	assert.Equal(t, 0, m.MaxStep())
	assert.False(t, m.Next())
}

func TestHandleKey(t *testing.T) {
	m := NewMachine(model.RevealOneByOneFocus)
	m.SetSequence(seqOf(it("a"), it("b"), it("c")))

	assert.True(t, m.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.True(t, m.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, 2, m.Step())
	assert.True(t, m.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.Equal(t, 1, m.Step())
	assert.False(t, m.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	m.SetInputFocus(false)
	assert.False(t, m.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.Equal(t, 1, m.Step())
}
