package sanitize

import (
	"regexp"
	"sort"
	"strings"
)

// Name identifies a sanitization profile.
type Name string

const (
	// NameInline allows emphasis, strong, underline, line breaks and links.
	NameInline Name = "inline"
	// NameRich adds paragraphs, lists and color spans to the inline set.
	NameRich Name = "rich"
	// NamePlain keeps text only, with explicit line breaks.
	NamePlain Name = "plain"
	// NameBrand adds the table layout and images of brand headers and footers
	// to the rich set.
	NameBrand Name = "brand"
)

type mode uint8

const (
	modeTree mode = iota
	modePlain
)

type attrKind uint8

const (
	// attrValue keeps the attribute when its value matches pattern.
	attrValue attrKind = iota
	// attrURL keeps the attribute when it uses a safe scheme.
	attrURL
	// attrColorStyle rewrites style down to validated color declarations.
	attrColorStyle
	// attrIndent converts an indent token into a margin declaration.
	attrIndent
	// attrSrc keeps an image source using http, https or a data image.
	attrSrc
	// attrLayoutStyle keeps box, text and color declarations.
	attrLayoutStyle
)

type attrRule struct {
	name    string
	kind    attrKind
	pattern *regexp.Regexp
}

type elementRule struct {
	attrs []attrRule
	// unwrapBare unwraps the element when no attribute survives filtering.
	unwrapBare bool
}

// Profile is an immutable sanitization rule set. Obtain profiles from the
// catalog (Inline, Rich, Plain, Lookup); Restrict derives narrower copies.
type Profile struct {
	name           Name
	mode           mode
	elements       map[string]elementRule
	renames        map[string]string
	unwrap         map[string]struct{}
	normalizeLists bool
}

// Name returns the profile name.
func (p Profile) Name() Name {
	return p.name
}

func (p Profile) String() string {
	return string(p.name)
}

// Allows reports whether element name may appear in sanitized output.
func (p Profile) Allows(name string) bool {
	_, ok := p.elements[strings.ToLower(name)]
	return ok
}

// Elements returns the sorted element allowlist.
func (p Profile) Elements() []string {
	out := make([]string, 0, len(p.elements))
	for name := range p.elements {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Restrict returns a copy of p that only allows the listed elements (and
// only those already allowed by p). Elements dropped from the allowlist are
// flattened to text unless p unwraps them.
func (p Profile) Restrict(tags ...string) Profile {
	keep := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		keep[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	out := Profile{
		name:           p.name,
		mode:           p.mode,
		elements:       make(map[string]elementRule, len(p.elements)),
		renames:        make(map[string]string, len(p.renames)),
		unwrap:         p.unwrap,
		normalizeLists: p.normalizeLists,
	}
	if p.mode == modePlain {
		out.elements = p.elements
		out.renames = p.renames
		return out
	}
	for name, rule := range p.elements {
		if _, ok := keep[name]; ok {
			out.elements[name] = rule
		}
	}
	for from, to := range p.renames {
		if _, ok := out.elements[to]; ok {
			out.renames[from] = to
		}
	}
	return out
}

var (
	safeHref     = regexp.MustCompile(`(?i)^(https?:|mailto:|tel:|#)`)
	safeSrc      = regexp.MustCompile(`(?i)^(https?:|data:image/(png|gif|jpe?g|webp);base64,)`)
	dirPattern   = regexp.MustCompile(`^(ltr|rtl|auto)$`)
	sizePattern  = regexp.MustCompile(`^\d{1,4}%?$`)
	alignPattern = regexp.MustCompile(`(?i)^(left|right|center|middle|top|bottom|justify)$`)
	anyValue     = regexp.MustCompile(`^[^<>]*$`)
)

var (
	inlineProfile = buildInline()
	richProfile   = buildRich()
	brandProfile  = buildBrand()
	plainProfile  = Profile{
		name:     NamePlain,
		mode:     modePlain,
		elements: map[string]elementRule{"br": {}},
	}
)

// Inline returns the single-line formatting profile.
func Inline() Profile {
	return inlineProfile
}

// Rich returns the paragraph profile with lists and color.
func Rich() Profile {
	return richProfile
}

// Brand returns the profile for brand-owned blocks (header and footer).
func Brand() Profile {
	return brandProfile
}

// Plain returns the text-only profile.
func Plain() Profile {
	return plainProfile
}

// Lookup returns the catalog profile with the given name.
func Lookup(name Name) (Profile, bool) {
	switch Name(strings.ToLower(string(name))) {
	case NameInline:
		return inlineProfile, true
	case NameRich:
		return richProfile, true
	case NamePlain:
		return plainProfile, true
	case NameBrand:
		return brandProfile, true
	}
	return Profile{}, false
}

// Names lists the catalog profile names.
func Names() []Name {
	return []Name{NameInline, NameRich, NamePlain, NameBrand}
}

// BrandElements is the allowlist of the brand profile.
func BrandElements() []string {
	return Brand().Elements()
}

func buildInline() Profile {
	return Profile{
		name: NameInline,
		mode: modeTree,
		elements: map[string]elementRule{
			"strong": {},
			"em":     {},
			"u":      {},
			"br":     {},
			"a":      {attrs: []attrRule{{name: "href", kind: attrURL}}},
		},
		renames: map[string]string{"b": "strong", "i": "em"},
		unwrap: setOf("p", "div", "span", "h1", "h2", "h3", "h4", "h5", "h6",
			"section", "article", "header", "footer", "main", "blockquote"),
	}
}

func buildRich() Profile {
	dir := attrRule{name: "dir", kind: attrValue, pattern: dirPattern}
	return Profile{
		name: NameRich,
		mode: modeTree,
		elements: map[string]elementRule{
			"a":      {attrs: []attrRule{{name: "href", kind: attrURL}}},
			"br":     {},
			"strong": {},
			"em":     {},
			"u":      {},
			"p":      {attrs: []attrRule{dir}},
			"ol":     {attrs: []attrRule{dir}},
			"ul":     {attrs: []attrRule{dir}},
			"li":     {attrs: []attrRule{dir, {name: "style", kind: attrIndent}}},
			"span":   {attrs: []attrRule{{name: "style", kind: attrColorStyle}}, unwrapBare: true},
		},
		renames:        map[string]string{"b": "strong", "i": "em"},
		unwrap:         setOf("div", "section", "article", "header", "footer", "main", "font", "center"),
		normalizeLists: true,
	}
}

func buildBrand() Profile {
	rich := buildRich()
	style := attrRule{name: "style", kind: attrLayoutStyle}
	align := attrRule{name: "align", kind: attrValue, pattern: alignPattern}
	valign := attrRule{name: "valign", kind: attrValue, pattern: alignPattern}
	width := attrRule{name: "width", kind: attrValue, pattern: sizePattern}
	height := attrRule{name: "height", kind: attrValue, pattern: sizePattern}

	elements := make(map[string]elementRule, len(rich.elements)+6)
	for name, rule := range rich.elements {
		elements[name] = rule
	}
	elements["p"] = elementRule{attrs: []attrRule{{name: "dir", kind: attrValue, pattern: dirPattern}, align, style}}
	elements["div"] = elementRule{attrs: []attrRule{align, style}}
	elements["img"] = elementRule{attrs: []attrRule{
		{name: "src", kind: attrSrc},
		{name: "alt", kind: attrValue, pattern: anyValue},
		width, height, align, style,
	}}
	elements["table"] = elementRule{attrs: []attrRule{
		width, align, style,
		{name: "border", kind: attrValue, pattern: sizePattern},
		{name: "cellpadding", kind: attrValue, pattern: sizePattern},
		{name: "cellspacing", kind: attrValue, pattern: sizePattern},
		{name: "role", kind: attrValue, pattern: regexp.MustCompile(`^presentation$`)},
	}}
	elements["tbody"] = elementRule{}
	elements["tr"] = elementRule{attrs: []attrRule{align, valign, style}}
	elements["td"] = elementRule{attrs: []attrRule{
		width, height, align, valign, style,
		{name: "colspan", kind: attrValue, pattern: sizePattern},
	}}

	unwrap := make(map[string]struct{}, len(rich.unwrap))
	for name := range rich.unwrap {
		if _, ok := elements[name]; !ok {
			unwrap[name] = struct{}{}
		}
	}
	return Profile{
		name:           NameBrand,
		mode:           modeTree,
		elements:       elements,
		renames:        rich.renames,
		unwrap:         unwrap,
		normalizeLists: true,
	}
}

// inert elements never contribute text, whatever the profile.
var inert = setOf("script", "style", "template", "noscript", "iframe", "object", "embed",
	"head", "title", "svg", "math", "textarea", "select", "noembed", "noframes", "xmp")

func isInert(name string) bool {
	_, ok := inert[name]
	return ok
}

func setOf(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}
