package sections

import (
	"strings"

	"github.com/goliatone/go-mailfence/pkg/sanitize"
)

// Fragment names the skeleton template for one section and the values it is
// executed with. String values listed in the template as |safe must already
// be sanitized.
type Fragment struct {
	Template string
	Data     map[string]any
}

// Builder prepares the skeleton data for one section type.
type Builder interface {
	Type() Type
	Build(s Section, palette Palette) Fragment
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc struct {
	For Type
	Fn  func(s Section, palette Palette) Fragment
}

func (b BuilderFunc) Type() Type { return b.For }

func (b BuilderFunc) Build(s Section, palette Palette) Fragment { return b.Fn(s, palette) }

// DefaultBuilders returns the builders for every built-in type.
func DefaultBuilders() []Builder {
	return []Builder{
		BuilderFunc{For: TypeParagraph, Fn: buildParagraph},
		BuilderFunc{For: TypeCTA, Fn: buildCTA},
		BuilderFunc{For: TypeImageText, Fn: buildImageText},
		BuilderFunc{For: TypeSeparator, Fn: buildSeparator},
		BuilderFunc{For: TypeFullWidthHeader, Fn: buildBand("header")},
		BuilderFunc{For: TypeFullWidthFooter, Fn: buildBand("footer")},
	}
}

func richContent(markup string) string {
	return sanitize.Sanitize(markup, sanitize.Rich())
}

func buildParagraph(s Section, _ Palette) Fragment {
	return Fragment{
		Template: "paragraph",
		Data:     map[string]any{"content": richContent(s.Content)},
	}
}

func buildCTA(s Section, palette Palette) Fragment {
	label := s.Label
	if strings.TrimSpace(label) == "" {
		label = DefaultCTALabel
	}
	href := strings.TrimSpace(s.Href)
	if href == "" {
		href = DefaultCTAHref
	}
	return Fragment{
		Template: "cta",
		Data: map[string]any{
			"label": label,
			"href":  href,
			"color": HexOr(s.Color, palette.Accent),
		},
	}
}

func buildImageText(s Section, _ Palette) Fragment {
	return Fragment{
		Template: "imgtext",
		Data: map[string]any{
			"content":     richContent(s.Content),
			"img":         strings.TrimSpace(s.Img),
			"alt":         s.Alt,
			"image_first": variantOf(s) == VariantLeft,
		},
	}
}

func buildSeparator(s Section, palette Palette) Fragment {
	return Fragment{
		Template: "separator",
		Data:     map[string]any{"color": HexOr(s.Color, palette.Separator)},
	}
}

func buildBand(role string) func(Section, Palette) Fragment {
	return func(s Section, palette Palette) Fragment {
		return Fragment{
			Template: "band",
			Data: map[string]any{
				"role":       role,
				"html":       richContent(s.HTML),
				"color":      HexOr(s.Color, palette.Band),
				"text_color": HexOr(s.TextColor, palette.BandText),
				"font_size":  ClampFontSize(s.FontSize),
			},
		}
	}
}
