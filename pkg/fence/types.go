package fence

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-mailfence/pkg/sanitize"
)

// BlockType is the declared editing type of a block.
type BlockType string

const (
	// TypeText is a single-line plain text field.
	TypeText BlockType = "text"
	// TypeTextArea is a multi-line plain text field.
	TypeTextArea BlockType = "textarea"
	// TypeInline is a single-line field allowing inline formatting.
	TypeInline BlockType = "inline"
	// TypeRich is a rich text field with paragraphs, lists and colors.
	TypeRich BlockType = "rich"
	// TypeSelect is a plain field restricted to the declared options.
	TypeSelect BlockType = "select"
)

// Plain reports whether values of this type never carry markup.
func (t BlockType) Plain() bool {
	switch t {
	case TypeText, TypeTextArea, TypeSelect:
		return true
	}
	return false
}

// ParseBlockType maps a marker type attribute onto a BlockType.
func ParseBlockType(raw string) (BlockType, bool) {
	switch BlockType(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeText:
		return TypeText, true
	case TypeTextArea:
		return TypeTextArea, true
	case TypeInline:
		return TypeInline, true
	case TypeRich:
		return TypeRich, true
	case TypeSelect:
		return TypeSelect, true
	}
	return "", false
}

// Reserved block names. HEADER and FOOTER default to rich text with the brand
// allowlist; SECTIONS receives the compiled section list.
const (
	NameHeader   = "HEADER"
	NameFooter   = "FOOTER"
	NameSections = "SECTIONS"
)

// Reserved reports whether name is one of the brand-owned names that default
// to rich text.
func Reserved(name string) bool {
	return strings.EqualFold(name, NameHeader) || strings.EqualFold(name, NameFooter)
}

// Recognised marker attribute keys.
const (
	AttrName    = "name"
	AttrLabel   = "label"
	AttrType    = "type"
	AttrMax     = "max"
	AttrAllowed = "allowed"
	AttrOptions = "options"
)

// Span is a half-open byte range [Start, End) into a document.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Block describes one editable region found by Parse. Blocks are derived
// values; change a block by computing new content and calling Replace.
type Block struct {
	Name  string
	Label string
	Type  BlockType
	// MaxLength is the maximum value length in characters; zero means
	// unlimited.
	MaxLength int
	// AllowedTags lists the element names accepted for the block.
	AllowedTags []string
	// AllowedOverride is true when AllowedTags came from the allowed
	// attribute instead of the type defaults.
	AllowedOverride bool
	Options         []string
	// Content covers the bytes strictly between the two markers.
	Content Span
	// Outer covers the start marker, the content and the end marker.
	Outer Span
	Raw   string
	Attrs map[string]string
}

// Value returns the block content without the surrounding whitespace that
// templates and Wrap add.
func (b Block) Value() string {
	return strings.TrimSpace(b.Raw)
}

// HasOption reports whether value is one of the declared options.
func (b Block) HasOption(value string) bool {
	for _, option := range b.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Profile selects the sanitization profile for values written into the block:
// plain types use the plain profile, inline and rich their namesake. Rich
// HEADER and FOOTER blocks get the brand profile. An explicit allowed
// attribute narrows the profile further.
func (b Block) Profile() sanitize.Profile {
	var profile sanitize.Profile
	switch b.Type {
	case TypeRich:
		profile = sanitize.Rich()
		if Reserved(b.Name) {
			profile = sanitize.Brand()
		}
	case TypeInline:
		profile = sanitize.Inline()
	default:
		return sanitize.Plain()
	}
	if b.AllowedOverride {
		return profile.Restrict(b.AllowedTags...)
	}
	return profile
}

var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

func parseAttrs(payload string) map[string]string {
	out := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(payload, -1) {
		out[m[1]] = m[2]
	}
	return out
}

func nameFor(attrs map[string]string, ordinal int) string {
	if name := attrs[AttrName]; name != "" {
		return name
	}
	return "block_" + strconv.Itoa(ordinal)
}

func newBlock(document string, r region) Block {
	name := r.name()
	block := Block{
		Name:    name,
		Label:   r.attrs[AttrLabel],
		Content: Span{Start: r.open.End, End: r.close.Start},
		Outer:   Span{Start: r.open.Start, End: r.close.End},
		Raw:     document[r.open.End:r.close.Start],
		Attrs:   r.attrs,
	}
	if block.Label == "" {
		block.Label = name
	}

	typ, ok := ParseBlockType(r.attrs[AttrType])
	if !ok {
		typ = defaultType(name)
	}
	block.Type = typ

	if raw := strings.TrimSpace(r.attrs[AttrMax]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			block.MaxLength = n
		}
	}

	if raw, ok := r.attrs[AttrAllowed]; ok {
		block.AllowedTags = splitList(strings.ToLower(raw), ",")
		block.AllowedOverride = true
	} else {
		block.AllowedTags = defaultAllowedTags(name, typ)
	}

	if raw, ok := r.attrs[AttrOptions]; ok {
		block.Options = splitList(raw, "|")
	}
	return block
}

func defaultType(name string) BlockType {
	if Reserved(name) {
		return TypeRich
	}
	return TypeText
}

func defaultAllowedTags(name string, typ BlockType) []string {
	switch {
	case Reserved(name) && typ == TypeRich:
		return sanitize.BrandElements()
	case typ == TypeRich:
		return sanitize.Rich().Elements()
	case typ == TypeInline:
		return sanitize.Inline().Elements()
	}
	return nil
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
