package sanitize

import (
	"fmt"
	"strconv"
)

// Sanitize cleans markup under profile p. The result only contains elements
// allowed by p, each with only the attributes its rules permit.
func Sanitize(markup string, p Profile) string {
	if p.mode == modePlain {
		return sanitizePlain(markup)
	}
	out := p.pass(markup)
	// Unwrapping can leave nesting the parser rebuilds differently, so clean
	// until the output is stable.
	for i := 0; i < maxPasses; i++ {
		next := p.pass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

const maxPasses = 4

func (p Profile) pass(markup string) string {
	nodes := ParseFragment(markup)
	if p.normalizeLists {
		normalizeLists(nodes)
	}
	return Render(p.clean(nodes))
}

// SanitizeNamed sanitizes markup under the catalog profile called name.
func SanitizeNamed(name Name, markup string) (string, error) {
	p, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("sanitize: unknown profile %q", name)
	}
	return Sanitize(markup, p), nil
}

func (p Profile) clean(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Kind == TextNode {
			out = append(out, n)
			continue
		}
		if isInert(n.Name) {
			continue
		}

		name := n.Name
		if renamed, ok := p.renames[name]; ok {
			name = renamed
		}

		rule, allowed := p.elements[name]
		if !allowed {
			if _, unwrap := p.unwrap[name]; unwrap {
				out = append(out, p.clean(n.Children)...)
				continue
			}
			if text := n.TextContent(); text != "" {
				out = append(out, Text(text))
			}
			continue
		}

		attrs := filterAttrs(rule, n)
		if rule.unwrapBare && len(attrs) == 0 {
			out = append(out, p.clean(n.Children)...)
			continue
		}
		out = append(out, &Node{
			Kind:     ElementNode,
			Name:     name,
			Attrs:    attrs,
			Children: p.clean(n.Children),
		})
	}
	return out
}

func filterAttrs(rule elementRule, n *Node) []Attr {
	var out []Attr
	for _, ar := range rule.attrs {
		switch ar.kind {
		case attrValue:
			if v, ok := n.Attr(ar.name); ok && (ar.pattern == nil || ar.pattern.MatchString(v)) {
				out = append(out, Attr{Key: ar.name, Val: v})
			}
		case attrURL:
			if v, ok := n.Attr(ar.name); ok && SafeURL(v) {
				out = append(out, Attr{Key: ar.name, Val: v})
			}
		case attrSrc:
			if v, ok := n.Attr(ar.name); ok && safeSrc.MatchString(v) {
				out = append(out, Attr{Key: ar.name, Val: v})
			}
		case attrLayoutStyle:
			style, _ := n.Attr("style")
			if kept := LayoutStyle(style); kept != "" {
				out = append(out, Attr{Key: ar.name, Val: kept})
			}
		case attrColorStyle:
			style, _ := n.Attr("style")
			if kept := ColorStyle(style); kept != "" {
				out = append(out, Attr{Key: ar.name, Val: kept})
			}
		case attrIndent:
			if level := IndentLevel(n); level > 0 {
				out = append(out, Attr{Key: ar.name, Val: "margin-left:" + strconv.Itoa(level*IndentStep) + "px"})
			}
		}
	}
	return out
}

// SafeURL reports whether a link reference uses one of the allowed schemes:
// http, https, mailto, tel or an in-page fragment.
func SafeURL(href string) bool {
	return safeHref.MatchString(href)
}

// normalizeLists rewrites ordered lists whose items are all tagged as bullet
// items into unordered lists. Lists mixing bullet and numbered items are left
// alone.
func normalizeLists(nodes []*Node) {
	for _, n := range nodes {
		if n.Kind != ElementNode {
			continue
		}
		if n.Name == "ol" && allBulletItems(n) {
			n.Name = "ul"
		}
		normalizeLists(n.Children)
	}
}

func allBulletItems(list *Node) bool {
	items := 0
	for _, child := range list.Children {
		if child.Kind != ElementNode || child.Name != "li" {
			continue
		}
		items++
		if v, _ := child.Attr("data-list"); v != "bullet" {
			return false
		}
	}
	return items > 0
}
