package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/history"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/search"
	"github.com/sirupsen/logrus"
)

const searchHistorySize = 50

// Search manages the incremental search prompt. Matches cover the whole
// tree, including collapsed and hidden items.
type Search struct {
	active     bool
	input      lineInput
	history    *history.Input
	items      []*model.ListItem
	matches    []string // ids in document order
	current    int
	parseError string
}

// NewSearch creates a new Search without history persistence
func NewSearch() *Search {
	return &Search{history: history.NewInput(searchHistorySize)}
}

// NewSearchWithHistory creates a Search whose history is kept in manager
func NewSearchWithHistory(manager *history.Manager) *Search {
	h, err := history.NewPersistentInput(searchHistorySize, manager, "search.toml")
	if err != nil {
		logrus.Warnf("Failed to load search history: %v", err)
	}
	return &Search{history: h}
}

// Start starts search mode over items
func (s *Search) Start(items []*model.ListItem) {
	s.active = true
	s.items = items
	s.input.set("")
	s.matches = nil
	s.current = 0
	s.parseError = ""
	s.history.Reset()
}

// Stop stops search mode, keeping the matches for n/N
func (s *Search) Stop() {
	s.active = false
	s.history.Reset()
}

// IsActive returns whether search mode is active
func (s *Search) IsActive() bool {
	return s.active
}

// HandleKey handles key presses during search mode. It returns true when
// Enter closed the prompt with at least one match.
func (s *Search) HandleKey(ev *tcell.EventKey) bool {
	if !s.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.matches = nil
		s.Stop()
		return false
	case tcell.KeyEnter:
		s.updateResults()
		if err := s.history.Add(s.input.text()); err != nil {
			logrus.Warnf("Failed to save search history: %v", err)
		}
		s.Stop()
		return len(s.matches) > 0
	case tcell.KeyUp:
		if prev, ok := s.history.Previous(s.input.text()); ok {
			s.input.set(prev)
			s.updateResults()
		}
	case tcell.KeyDown:
		if next, ok := s.history.Next(); ok {
			s.input.set(next)
			s.updateResults()
		}
	default:
		if s.input.handleKey(ev) {
			s.updateResults()
		}
	}
	return false
}

// SetItems replaces the searched tree and reruns the query
func (s *Search) SetItems(items []*model.ListItem) {
	s.items = items
	if s.input.text() != "" {
		s.updateResults()
	}
}

func (s *Search) updateResults() {
	s.matches = nil
	s.current = 0
	s.parseError = ""

	query := s.input.text()
	if query == "" {
		return
	}

	expr, err := search.ParseQuery(query)
	if err != nil {
		s.parseError = err.Error()
		return
	}
	for _, item := range search.Find(s.items, expr) {
		s.matches = append(s.matches, item.ID)
	}
}

// NextMatch moves to the next match, wrapping around
func (s *Search) NextMatch() bool {
	if len(s.matches) == 0 {
		return false
	}
	s.current = (s.current + 1) % len(s.matches)
	return true
}

// PrevMatch moves to the previous match, wrapping around
func (s *Search) PrevMatch() bool {
	if len(s.matches) == 0 {
		return false
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
	return true
}

// CurrentMatch returns the id of the current match
func (s *Search) CurrentMatch() (string, bool) {
	if len(s.matches) == 0 {
		return "", false
	}
	return s.matches[s.current], true
}

// CurrentIndex returns the position of the current match
func (s *Search) CurrentIndex() int {
	return s.current
}

// IsMatch reports whether id matched the last query
func (s *Search) IsMatch(id string) bool {
	for _, m := range s.matches {
		if m == id {
			return true
		}
	}
	return false
}

// GetMatchCount returns the number of matches
func (s *Search) GetMatchCount() int {
	return len(s.matches)
}

// GetParseError returns the last parse error, if any
func (s *Search) GetParseError() string {
	return s.parseError
}

// Render renders the search bar on the screen
func (s *Search) Render(screen *Screen, y int) {
	width := screen.GetWidth()

	var result string
	switch {
	case s.parseError != "":
		result = " (error: " + s.parseError + ")"
	case len(s.matches) == 0:
		result = " (no matches)"
	default:
		result = fmt.Sprintf(" (%d of %d matches)", s.current+1, len(s.matches))
	}
	if StringWidth(result) > width/2 {
		result = TruncateToWidthWithEllipsis(result, width/2)
	}
	resultX := width - StringWidth(result)

	x := screen.DrawString(0, y, "Search: ", screen.SearchLabelStyle())
	textStyle := screen.SearchTextStyle()
	s.input.render(screen, x, y, resultX-x, textStyle, textStyle.Reverse(true))
	screen.DrawString(resultX, y, result, screen.SearchResultCountStyle())
}
