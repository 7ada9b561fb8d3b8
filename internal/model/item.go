// Package model contains the model for smart lists
package model

import (
	"github.com/google/uuid"
)

// IconRef points at one entry of an icon set. Only the icon set registry
// knows what it looks like.
type IconRef struct {
	SetID  string `json:"setId" yaml:"setId" toml:"set_id"`
	IconID string `json:"iconId" yaml:"iconId" toml:"icon_id"`
}

// ListItem represents a single node in the list tree
type ListItem struct {
	ID            string      `json:"id" yaml:"id"`
	Text          string      `json:"text" yaml:"text"`
	IsHeader      bool        `json:"isHeader,omitempty" yaml:"isHeader,omitempty"`
	PrimaryIcon   *IconRef    `json:"primaryIcon,omitempty" yaml:"primaryIcon,omitempty"`
	SecondaryIcon *IconRef    `json:"secondaryIcon,omitempty" yaml:"secondaryIcon,omitempty"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	Detail        string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Visible       *bool       `json:"visible,omitempty" yaml:"visible,omitempty"`
	Collapsed     *bool       `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Children      []*ListItem `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is a list as stored by the host
type Document struct {
	Title  string          `json:"title" yaml:"title"`
	Config *DocumentConfig `json:"config,omitempty" yaml:"config,omitempty"`
	Items  []*ListItem     `json:"items" yaml:"items"`
}

// NewItem creates a new list item with a generated ID
func NewItem(text string) *ListItem {
	return &ListItem{
		ID:   generateID(),
		Text: text,
	}
}

// NewHeader creates a new header item with a generated ID
func NewHeader(text string) *ListItem {
	return &ListItem{
		ID:       generateID(),
		Text:     text,
		IsHeader: true,
	}
}

// NewDocument creates an empty document with the given title
func NewDocument(title string) *Document {
	return &Document{
		Title: title,
		Items: make([]*ListItem, 0),
	}
}

// Status returns the icon id of the primary icon, or "" when there is none
func (i *ListItem) Status() string {
	if i.PrimaryIcon == nil {
		return ""
	}
	return i.PrimaryIcon.IconID
}

// IsVisible reports whether the item is shown in presentation mode.
// Headers are always visible.
func (i *ListItem) IsVisible() bool {
	if i.IsHeader {
		return true
	}
	return i.Visible == nil || *i.Visible
}

// HasChildren reports whether the item has at least one child
func (i *ListItem) HasChildren() bool {
	return len(i.Children) > 0
}

// HasDetail reports whether the item carries long-form detail text
func (i *ListItem) HasDetail() bool {
	return i.Detail != ""
}

// Clone returns a shallow copy of the item. The children slice is shared;
// callers replace it rather than appending to it.
func (i *ListItem) Clone() *ListItem {
	c := *i
	return &c
}

// Bool returns a pointer to b, for the optional fields of ListItem
func Bool(b bool) *bool {
	return &b
}

// Walk visits every item in depth-first pre-order. Returning false from fn
// skips the children of that item.
func Walk(items []*ListItem, fn func(item *ListItem, depth int) bool) {
	walk(items, 0, fn)
}

func walk(items []*ListItem, depth int, fn func(item *ListItem, depth int) bool) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if fn(item, depth) {
			walk(item.Children, depth+1, fn)
		}
	}
}

// FindItemByID finds an item by its ID anywhere in the tree
func FindItemByID(items []*ListItem, id string) *ListItem {
	var found *ListItem
	Walk(items, func(item *ListItem, _ int) bool {
		if found != nil {
			return false
		}
		if item.ID == id {
			found = item
			return false
		}
		return true
	})
	return found
}

// AncestorIDs returns the ids on the path from the root down to, but not
// including, the item with id. It is nil when id is unknown.
func AncestorIDs(items []*ListItem, id string) []string {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == id {
			return []string{}
		}
		if path := AncestorIDs(item.Children, id); path != nil {
			return append([]string{item.ID}, path...)
		}
	}
	return nil
}

// CountItems returns the number of non-header items in the tree
func CountItems(items []*ListItem) int {
	n := 0
	Walk(items, func(item *ListItem, _ int) bool {
		if !item.IsHeader {
			n++
		}
		return true
	})
	return n
}

// SectionIndexes splits a sibling list into sections and returns the section
// index of every sibling. A header opens a new section unless the current one
// has no content yet, so consecutive headers share a section. Non-header
// items and headers that own children count as content.
func SectionIndexes(siblings []*ListItem) []int {
	out := make([]int, len(siblings))
	section := 0
	seenContent := false
	for idx, item := range siblings {
		if item.IsHeader && seenContent {
			section++
			seenContent = false
		}
		if !item.IsHeader || item.HasChildren() {
			seenContent = true
		}
		out[idx] = section
	}
	return out
}

func generateID() string {
	return "item_" + uuid.NewString()[:8]
}
