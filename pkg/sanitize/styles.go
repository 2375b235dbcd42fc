package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// IndentStep is the margin in pixels per list indent level.
	IndentStep = 20
	// MaxIndent is the deepest list indent level kept.
	MaxIndent = 8
)

var (
	hexColor    = regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`)
	rgbColor    = regexp.MustCompile(`(?i)^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}(?:\s*,\s*(0|1|0?\.\d+))?\s*\)$`)
	indentClass = regexp.MustCompile(`ql-indent-(\d+)`)
	marginPx    = regexp.MustCompile(`^(\d+)px$`)
)

// Declaration is one property/value pair of an inline style.
type Declaration struct {
	Property string
	Value    string
}

// ParseStyle splits a style attribute into declarations. Properties are
// lower-cased, values trimmed; malformed entries are skipped.
func ParseStyle(style string) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(style, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, ":")
		if idx <= 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:idx]))
		val := strings.TrimSpace(part[idx+1:])
		if prop == "" || val == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: val})
	}
	return out
}

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// IsColor reports whether s is a hex color or an rgb()/rgba() color.
func IsColor(s string) bool {
	return hexColor.MatchString(s) || rgbColor.MatchString(s)
}

// ColorStyle keeps only color and background-color declarations holding a
// valid color and joins them back into a style string.
func ColorStyle(style string) string {
	var kept []string
	for _, decl := range ParseStyle(style) {
		if decl.Property != "color" && decl.Property != "background-color" {
			continue
		}
		if !IsColor(decl.Value) {
			continue
		}
		kept = append(kept, decl.Property+":"+decl.Value)
	}
	return strings.Join(kept, ";")
}

var layoutProperties = setOf(
	"color", "background", "background-color", "font-family", "font-size", "font-weight",
	"font-style", "line-height", "letter-spacing", "text-align", "text-decoration",
	"text-transform", "vertical-align", "padding", "padding-top", "padding-right",
	"padding-bottom", "padding-left", "margin", "margin-top", "margin-right",
	"margin-bottom", "margin-left", "width", "max-width", "height", "border",
	"border-top", "border-bottom", "border-radius", "display",
)

var unsafeStyleValue = regexp.MustCompile(`(?i)(url\s*\(|expression\s*\(|javascript:|[\\<>"])`)

// LayoutStyle keeps box, text and color declarations whose value loads no
// external resource and joins them back into a style string.
func LayoutStyle(style string) string {
	var kept []string
	for _, decl := range ParseStyle(style) {
		if _, ok := layoutProperties[decl.Property]; !ok {
			continue
		}
		if unsafeStyleValue.MatchString(decl.Value) {
			continue
		}
		kept = append(kept, decl.Property+":"+decl.Value)
	}
	return strings.Join(kept, ";")
}

// IndentLevel reads the list indent of an item from its ql-indent-N class
// token, or from a margin-left written by an earlier pass, clamped to
// MaxIndent.
func IndentLevel(n *Node) int {
	if class, ok := n.Attr("class"); ok {
		if m := indentClass.FindStringSubmatch(class); m != nil {
			if len(m[1]) > 2 {
				return MaxIndent
			}
			level, _ := strconv.Atoi(m[1])
			return clampIndent(level)
		}
	}
	style, _ := n.Attr("style")
	for _, decl := range ParseStyle(style) {
		if decl.Property != "margin-left" {
			continue
		}
		m := marginPx.FindStringSubmatch(decl.Value)
		if m == nil || len(m[1]) > 4 {
			continue
		}
		px, _ := strconv.Atoi(m[1])
		if px%IndentStep != 0 {
			continue
		}
		return clampIndent(px / IndentStep)
	}
	return 0
}

func clampIndent(level int) int {
	if level > MaxIndent {
		return MaxIndent
	}
	return level
}
