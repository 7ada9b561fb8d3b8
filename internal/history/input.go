package history

// Input is the recall list of one prompt, such as the command line or the
// search box. Up and down walk through earlier entries.
type Input struct {
	entries    []string
	cursor     int // -1 when not navigating
	maxEntries int
	draft      string // what was typed before navigation started
	manager    *Manager
	filename   string
}

// NewInput creates an in-memory input history
func NewInput(maxEntries int) *Input {
	return &Input{cursor: -1, maxEntries: maxEntries}
}

// NewPersistentInput creates an input history backed by filename in manager
func NewPersistentInput(maxEntries int, manager *Manager, filename string) (*Input, error) {
	in := NewInput(maxEntries)
	in.manager = manager
	in.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return in, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	in.entries = entries
	return in, nil
}

// Add records entry. Empty entries and repeats of the last entry are
// skipped; the oldest entries fall off past maxEntries.
func (in *Input) Add(entry string) error {
	in.Reset()
	if entry == "" {
		return nil
	}
	if n := len(in.entries); n > 0 && in.entries[n-1] == entry {
		return nil
	}

	in.entries = append(in.entries, entry)
	if len(in.entries) > in.maxEntries {
		in.entries = in.entries[len(in.entries)-in.maxEntries:]
	}

	if in.manager == nil || in.filename == "" {
		return nil
	}
	return in.manager.Save(in.filename, in.entries)
}

// Previous moves to the older entry. draft is what the prompt holds now and
// comes back when Next walks past the newest entry.
func (in *Input) Previous(draft string) (string, bool) {
	if len(in.entries) == 0 {
		return "", false
	}
	switch {
	case in.cursor < 0:
		in.draft = draft
		in.cursor = len(in.entries) - 1
	case in.cursor > 0:
		in.cursor--
	}
	return in.entries[in.cursor], true
}

// Next moves to the newer entry, ending at the saved draft
func (in *Input) Next() (string, bool) {
	if in.cursor < 0 {
		return "", false
	}
	in.cursor++
	if in.cursor >= len(in.entries) {
		draft := in.draft
		in.Reset()
		return draft, true
	}
	return in.entries[in.cursor], true
}

// Reset stops navigating
func (in *Input) Reset() {
	in.cursor = -1
	in.draft = ""
}

// Entries returns a copy of the stored entries, oldest first
func (in *Input) Entries() []string {
	return append([]string(nil), in.entries...)
}

// IsNavigating reports whether Previous was called since the last Reset
func (in *Input) IsNavigating() bool {
	return in.cursor >= 0
}
