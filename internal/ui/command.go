package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/history"
	"github.com/sirupsen/logrus"
)

const commandHistorySize = 50

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active  bool
	input   lineInput
	history *history.Input
}

// NewCommandMode creates a new CommandMode without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{history: history.NewInput(commandHistorySize)}
}

// NewCommandModeWithHistory creates a CommandMode whose history is kept in
// manager. A history that fails to load starts empty.
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, err := history.NewPersistentInput(commandHistorySize, manager, "command.toml")
	if err != nil {
		logrus.Warnf("Failed to load command history: %v", err)
	}
	return &CommandMode{history: h}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.set("")
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// History returns earlier commands, oldest first
func (c *CommandMode) History() []string {
	return c.history.Entries()
}

// HandleKey processes a key press in command mode. done is true when the
// command line closed; command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input.text())
		if err := c.history.Add(cmd); err != nil {
			logrus.Warnf("Failed to save command history: %v", err)
		}
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if prev, ok := c.history.Previous(c.input.text()); ok {
			c.input.set(prev)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.input.set(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input.empty() {
			c.Stop()
			return "", true
		}
		c.input.handleKey(ev)
	default:
		c.input.handleKey(ev)
	}
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.text())
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	x := screen.DrawString(0, y, ":", screen.CommandPromptStyle())
	textStyle := screen.CommandTextStyle()
	c.input.render(screen, x, y, screen.GetWidth()-x, textStyle, textStyle.Reverse(true))
}
