package sections

import (
	"strings"

	"github.com/goliatone/go-mailfence/pkg/sanitize"
)

const (
	DefaultAccent    = "#667eea"
	DefaultSeparator = "#e2e8f0"
	DefaultBand      = "#0a1a36"
	DefaultBandText  = "#ffffff"

	DefaultFontSize = 16
	MinFontSize     = 10
	MaxFontSize     = 40
)

// Palette holds the fallback colors substituted for missing or malformed
// section colors.
type Palette struct {
	Accent    string
	Separator string
	Band      string
	BandText  string
}

// DefaultPalette returns the built-in fallback colors.
func DefaultPalette() Palette {
	return Palette{
		Accent:    DefaultAccent,
		Separator: DefaultSeparator,
		Band:      DefaultBand,
		BandText:  DefaultBandText,
	}
}

// merge fills empty or invalid entries of p from base.
func (p Palette) merge(base Palette) Palette {
	return Palette{
		Accent:    HexOr(p.Accent, base.Accent),
		Separator: HexOr(p.Separator, base.Separator),
		Band:      HexOr(p.Band, base.Band),
		BandText:  HexOr(p.BandText, base.BandText),
	}
}

// HexOr returns value when it is a #rgb or #rrggbb color, fallback otherwise.
func HexOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if sanitize.IsHexColor(value) {
		return value
	}
	return fallback
}

// ClampFontSize bounds a band font size; zero selects the default.
func ClampFontSize(size int) int {
	switch {
	case size == 0:
		return DefaultFontSize
	case size < MinFontSize:
		return MinFontSize
	case size > MaxFontSize:
		return MaxFontSize
	}
	return size
}
