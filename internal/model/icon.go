package model

import "fmt"

// IconKind tells which representation an Icon carries
type IconKind int

const (
	IconGlyph IconKind = iota
	IconReference
	IconCustom
)

// Icon is a resolved icon representation. The engine never looks inside;
// renderers switch on Kind.
type Icon struct {
	Kind   IconKind `json:"kind" yaml:"kind" toml:"kind"`
	Glyph  string   `json:"glyph,omitempty" yaml:"glyph,omitempty" toml:"glyph"`
	Ref    *IconRef `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref"`
	Handle string   `json:"handle,omitempty" yaml:"handle,omitempty" toml:"handle"`
}

// Glyph returns a text icon
func Glyph(text string) Icon {
	return Icon{Kind: IconGlyph, Glyph: text}
}

// Reference returns an icon that points at another icon set entry
func Reference(setID, iconID string) Icon {
	return Icon{Kind: IconReference, Ref: &IconRef{SetID: setID, IconID: iconID}}
}

// Custom returns an icon identified by an opaque host handle
func Custom(handle string) Icon {
	return Icon{Kind: IconCustom, Handle: handle}
}

func (i Icon) String() string {
	switch i.Kind {
	case IconGlyph:
		return i.Glyph
	case IconReference:
		if i.Ref == nil {
			return ""
		}
		return fmt.Sprintf("%s/%s", i.Ref.SetID, i.Ref.IconID)
	case IconCustom:
		return i.Handle
	}
	return ""
}
