// Package disclosure steps through a render sequence during presentation,
// revealing items one at a time or one section at a time.
package disclosure

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
)

// Action is an input the machine reacts to
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
)

// ActionForKey maps arrow keys and space to actions
func ActionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyRight:
		return ActionNext
	case tcell.KeyLeft:
		return ActionPrev
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return ActionNext
		}
	}
	return ActionNone
}

// Override is a reveal state supplied by the host, for instance by an
// external slide-step driver. A nil RevealedIDs reveals everything.
type Override struct {
	FocusedID   string
	RevealedIDs []string
}

// Machine holds the step counter. It is inert while editing, in
// all-at-once mode and while an override is installed.
type Machine struct {
	mode       model.RevealMode
	step       int
	seq        []pipeline.FlatListItem
	editing    bool
	inputFocus bool
	override   *Override
}

// NewMachine creates a machine for mode at step 0
func NewMachine(mode model.RevealMode) *Machine {
	return &Machine{mode: mode, inputFocus: true}
}

// Mode returns the current reveal mode
func (m *Machine) Mode() model.RevealMode {
	return m.mode
}

// SetMode switches the reveal mode. Steps mean different things per mode,
// so a change restarts at step 0.
func (m *Machine) SetMode(mode model.RevealMode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.step = 0
}

// SetSequence replaces the render sequence and clamps the step into range
func (m *Machine) SetSequence(seq []pipeline.FlatListItem) {
	m.seq = seq
	m.step = clamp(m.step, 0, m.MaxStep())
}

// SetEditing disables stepping while the list is being edited
func (m *Machine) SetEditing(editing bool) {
	m.editing = editing
}

// SetInputFocus tells the machine whether the disclosure surface receives keys
func (m *Machine) SetInputFocus(focus bool) {
	m.inputFocus = focus
}

// Override hands control to the host
func (m *Machine) Override(o Override) {
	m.override = &o
}

// Release returns control from the host to the machine
func (m *Machine) Release() {
	m.override = nil
}

// Overridden reports whether a host override is installed
func (m *Machine) Overridden() bool {
	return m.override != nil
}

// Active reports whether Next and Prev do anything
func (m *Machine) Active() bool {
	if m.editing || m.override != nil {
		return false
	}
	switch m.mode {
	case model.RevealOneByOneFocus, model.RevealOneByOneAccumulate, model.RevealBySection:
		return true
	}
	return false
}

// Step returns the current step
func (m *Machine) Step() int {
	return m.step
}

// MaxStep returns the last valid step for the current mode and sequence
func (m *Machine) MaxStep() int {
	switch m.mode {
	case model.RevealOneByOneFocus, model.RevealOneByOneAccumulate:
		n := 0
		for _, row := range m.seq {
			if !row.Item.IsHeader {
				n++
			}
		}
		return max(n-1, 0)
	case model.RevealBySection:
		sections, _ := splitSections(m.seq)
		return max(len(sections)-1, 0)
	}
	return 0
}

// Next advances one step, stopping at MaxStep
func (m *Machine) Next() bool {
	if !m.Active() {
		return false
	}
	next := min(m.step+1, m.MaxStep())
	changed := next != m.step
	m.step = next
	return changed
}

// Prev goes back one step, stopping at 0
func (m *Machine) Prev() bool {
	if !m.Active() {
		return false
	}
	prev := max(m.step-1, 0)
	changed := prev != m.step
	m.step = prev
	return changed
}

// Reset returns to step 0
func (m *Machine) Reset() {
	m.step = 0
}

// Apply performs action and reports whether the step changed
func (m *Machine) Apply(action Action) bool {
	switch action {
	case ActionNext:
		return m.Next()
	case ActionPrev:
		return m.Prev()
	}
	return false
}

// HandleKey steps on arrow keys and space while the surface has input
// focus. It returns true when the key was consumed.
func (m *Machine) HandleKey(ev *tcell.EventKey) bool {
	if !m.inputFocus || !m.Active() {
		return false
	}
	action := ActionForKey(ev)
	if action == ActionNone {
		return false
	}
	m.Apply(action)
	return true
}

// State returns the reveal overlay for the current sequence
func (m *Machine) State() State {
	if m.override != nil {
		return overrideState(*m.override, m.mode)
	}
	if m.editing {
		return revealAll()
	}
	return compute(m.seq, m.mode, m.step)
}

func overrideState(o Override, mode model.RevealMode) State {
	st := State{
		FocusedID: o.FocusedID,
		dim:       mode == model.RevealOneByOneFocus && o.FocusedID != "",
	}
	if o.RevealedIDs == nil {
		st.all = true
		return st
	}
	st.RevealedIDs = make(map[string]bool, len(o.RevealedIDs))
	for _, id := range o.RevealedIDs {
		st.RevealedIDs[id] = true
	}
	return st
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
