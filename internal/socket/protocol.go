package socket

// Message represents a command sent to the running smartlist instance
type Message struct {
	Command string `json:"command"`

	// add_item
	Text   string `json:"text,omitempty"`
	Target string `json:"target,omitempty"` // insert after this id; empty appends
	Status string `json:"status,omitempty"`

	// reveal. A null revealed_ids reveals everything; an empty list hides
	// everything.
	FocusedID   string   `json:"focused_id,omitempty"`
	RevealedIDs []string `json:"revealed_ids"`

	// ResponseChan is set by the server for commands that answer with state
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Step      int    `json:"step"`
	MaxStep   int    `json:"max_step"`
	FocusedID string `json:"focused_id,omitempty"`
}

// Command types
const (
	CommandReveal  = "reveal"
	CommandRelease = "release"
	CommandNext    = "next"
	CommandPrev    = "prev"
	CommandState   = "state"
	CommandAddItem = "add_item"
)

// synchronous reports whether the sender waits for the application's answer
func synchronous(command string) bool {
	switch command {
	case CommandNext, CommandPrev, CommandState:
		return true
	}
	return false
}

func knownCommand(command string) bool {
	switch command {
	case CommandReveal, CommandRelease, CommandNext, CommandPrev, CommandState, CommandAddItem:
		return true
	}
	return false
}
