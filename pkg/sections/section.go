// Package sections turns the ordered list of typed body sections into the
// markup written into the SECTIONS block of a template.
package sections

import (
	"strings"

	"github.com/google/uuid"
)

// Type is the section variant.
type Type string

const (
	TypeParagraph       Type = "paragraph"
	TypeCTA             Type = "cta"
	TypeImageText       Type = "imgtext"
	TypeSeparator       Type = "separator"
	TypeFullWidthHeader Type = "fullwidthheader"
	TypeFullWidthFooter Type = "fullwidthfooter"
)

// Types lists the built-in section types in display order.
func Types() []Type {
	return []Type{TypeParagraph, TypeCTA, TypeImageText, TypeSeparator, TypeFullWidthHeader, TypeFullWidthFooter}
}

// KnownType reports whether t is one of the built-in types.
func KnownType(t Type) bool {
	for _, known := range Types() {
		if known == t {
			return true
		}
	}
	return false
}

// Variant selects the image side of an image-with-text section.
type Variant string

const (
	VariantLeft  Variant = "left"
	VariantRight Variant = "right"
)

// Section is one body block. Only the fields relevant to Type are read when
// rendering; the others are carried through export untouched.
type Section struct {
	ID        string  `json:"id" yaml:"id"`
	Type      Type    `json:"type" yaml:"type"`
	Content   string  `json:"content,omitempty" yaml:"content,omitempty"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Href      string  `json:"href,omitempty" yaml:"href,omitempty"`
	Img       string  `json:"img,omitempty" yaml:"img,omitempty"`
	Alt       string  `json:"alt,omitempty" yaml:"alt,omitempty"`
	Variant   Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	TextColor string  `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	HTML      string  `json:"html,omitempty" yaml:"html,omitempty"`
	FontSize  int     `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
}

// Default values used for new sections and for empty CTA fields.
const (
	DefaultParagraph = "New paragraph..."
	DefaultCTALabel  = "Click here"
	DefaultCTAHref   = "https://example.com"
)

// NewID returns a fresh section identifier.
func NewID() string {
	return uuid.NewString()
}

// New returns a section of type t with a fresh ID and the starter content the
// editor offers for that type.
func New(t Type) Section {
	s := Section{ID: NewID(), Type: t}
	switch t {
	case TypeParagraph:
		s.Content = DefaultParagraph
	case TypeCTA:
		s.Label = DefaultCTALabel
		s.Href = DefaultCTAHref
	case TypeImageText:
		s.Variant = VariantLeft
		s.Content = DefaultParagraph
	case TypeFullWidthHeader, TypeFullWidthFooter:
		s.FontSize = DefaultFontSize
	}
	return s
}

// Patch holds optional field updates for an existing section. Nil fields are
// left as they are. ID and Type cannot be patched.
type Patch struct {
	Content   *string
	Label     *string
	Href      *string
	Img       *string
	Alt       *string
	Variant   *Variant
	Color     *string
	TextColor *string
	HTML      *string
	FontSize  *int
}

// Apply returns s with the non-nil patch fields applied.
func (p Patch) Apply(s Section) Section {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Content, p.Content)
	set(&s.Label, p.Label)
	set(&s.Href, p.Href)
	set(&s.Img, p.Img)
	set(&s.Alt, p.Alt)
	set(&s.Color, p.Color)
	set(&s.TextColor, p.TextColor)
	set(&s.HTML, p.HTML)
	if p.Variant != nil {
		s.Variant = *p.Variant
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	return s
}

func variantOf(s Section) Variant {
	if Variant(strings.ToLower(strings.TrimSpace(string(s.Variant)))) == VariantRight {
		return VariantRight
	}
	return VariantLeft
}
