package app

import (
	"fmt"

	"github.com/pstuifzand/tui-smartlist/internal/disclosure"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/socket"
	"github.com/sirupsen/logrus"
)

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	logrus.Debugf("Received socket message: command=%s, text=%s, target=%s", msg.Command, msg.Text, msg.Target)

	var resp *socket.Response
	switch msg.Command {
	case socket.CommandReveal:
		a.session.Machine().Override(disclosure.Override{
			FocusedID:   msg.FocusedID,
			RevealedIDs: msg.RevealedIDs,
		})
		a.followFocus()
	case socket.CommandRelease:
		a.session.Machine().Release()
	case socket.CommandNext:
		a.step(true)
		resp = a.stepResponse()
	case socket.CommandPrev:
		a.step(false)
		resp = a.stepResponse()
	case socket.CommandState:
		resp = a.stepResponse()
	case socket.CommandAddItem:
		if err := a.addItemFromSocket(msg); err != nil {
			logrus.Warnf("Failed to add item: %v", err)
			a.SetError(err.Error())
		}
	default:
		logrus.Warnf("Unknown socket command: %s", msg.Command)
	}

	if msg.ResponseChan != nil {
		if resp == nil {
			resp = &socket.Response{Success: true}
		}
		msg.ResponseChan <- resp
	}
}

// stepResponse reports the disclosure position
func (a *App) stepResponse() *socket.Response {
	m := a.session.Machine()
	return &socket.Response{
		Success:   true,
		Message:   string(a.mode),
		Step:      m.Step(),
		MaxStep:   m.MaxStep(),
		FocusedID: a.session.Reveal().FocusedID,
	}
}

// addItemFromSocket appends an item, or inserts it after Target. Status
// names an icon of the configured icon set.
func (a *App) addItemFromSocket(msg socket.Message) error {
	if msg.Text == "" {
		return fmt.Errorf("add_item: missing text")
	}
	item := model.NewItem(msg.Text)
	ref, err := a.resolveStatus(msg.Status)
	if err != nil {
		return fmt.Errorf("add_item: %w", err)
	}
	item.PrimaryIcon = ref

	var ok bool
	if msg.Target == "" {
		ok = a.edit("add item", func() bool { return a.session.Append(item) })
	} else {
		if model.FindItemByID(a.session.Items(), msg.Target) == nil {
			return fmt.Errorf("add_item: unknown target %q", msg.Target)
		}
		ok = a.edit("add item", func() bool { return a.session.InsertAfter(msg.Target, item) })
	}
	if !ok {
		return fmt.Errorf("add_item: list is read-only")
	}
	logrus.Infof("Added item %s from socket", item.ID)
	a.SetStatus("Added: " + msg.Text)
	return nil
}
