// Package iconset resolves icon references to display descriptors.
package iconset

import (
	"sort"
	"strings"
	"sync"

	"github.com/pstuifzand/tui-smartlist/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one icon of a set
type Entry struct {
	ID    string     `toml:"id"`
	Icon  model.Icon `toml:"icon"`
	Label string     `toml:"label"`
	Color string     `toml:"color"`
}

// IconSet is an ordered collection of icons. Entry order is significant:
// grouping and progress segments follow it.
type IconSet struct {
	ID      string
	Name    string
	Entries []Entry
}

// Resolved is what a renderer needs to draw an IconRef
type Resolved struct {
	Icon  model.Icon
	Color string
	Label string
}

// Registry looks up icon sets. Both lookups report false when absent;
// callers degrade to "no icon".
type Registry interface {
	IconSet(setID string) (*IconSet, bool)
	Resolve(setID, iconID string) (Resolved, bool)
}

// Entry returns the entry with the given id
func (s *IconSet) Entry(iconID string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == iconID {
			return e, true
		}
	}
	return Entry{}, false
}

// Index returns the declared position of iconID, or -1
func (s *IconSet) Index(iconID string) int {
	for idx, e := range s.Entries {
		if e.ID == iconID {
			return idx
		}
	}
	return -1
}

// MapRegistry is an in-memory registry
type MapRegistry struct {
	mu   sync.RWMutex
	sets map[string]*IconSet
}

// NewMapRegistry creates a registry holding the given sets
func NewMapRegistry(sets ...*IconSet) *MapRegistry {
	r := &MapRegistry{sets: make(map[string]*IconSet)}
	for _, s := range sets {
		r.Add(s)
	}
	return r
}

// Add registers a set, replacing any set with the same id
func (r *MapRegistry) Add(set *IconSet) {
	if set == nil || set.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
}

// IconSet returns the set with the given id
func (r *MapRegistry) IconSet(setID string) (*IconSet, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sets[setID]
	return s, ok
}

// Resolve returns the display descriptor for an icon
func (r *MapRegistry) Resolve(setID, iconID string) (Resolved, bool) {
	set, ok := r.IconSet(setID)
	if !ok {
		return Resolved{}, false
	}
	e, ok := set.Entry(iconID)
	if !ok {
		return Resolved{}, false
	}
	return Resolved{Icon: e.Icon, Color: e.Color, Label: e.Label}, true
}

// IDs returns the registered set ids in sorted order
func (r *MapRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveRef resolves a possibly nil ref against any registry
func ResolveRef(reg Registry, ref *model.IconRef) (Resolved, bool) {
	if reg == nil || ref == nil {
		return Resolved{}, false
	}
	return reg.Resolve(ref.SetID, ref.IconID)
}

// HumanizeStatus turns a status id such as "in-progress" into "In Progress"
func HumanizeStatus(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	caser := cases.Title(language.English)
	for i, word := range words {
		words[i] = caser.String(strings.ToLower(word))
	}
	return strings.Join(words, " ")
}

// StatusLabel returns the label of a status in the given set, falling back
// to a humanized id when the registry does not know it
func StatusLabel(reg Registry, setID, iconID string) string {
	if reg != nil {
		if r, ok := reg.Resolve(setID, iconID); ok && r.Label != "" {
			return r.Label
		}
	}
	return HumanizeStatus(iconID)
}

// GlyphFor returns the text glyph drawn for ref. Reference icons are
// followed a few levels; custom icons and unknown refs give "".
func GlyphFor(reg Registry, ref *model.IconRef) string {
	for range 4 {
		r, ok := ResolveRef(reg, ref)
		if !ok {
			return ""
		}
		switch r.Icon.Kind {
		case model.IconGlyph:
			return r.Icon.Glyph
		case model.IconReference:
			ref = r.Icon.Ref
		default:
			return ""
		}
	}
	return ""
}
