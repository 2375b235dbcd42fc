package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	// TextNode carries a string payload in Text.
	TextNode NodeKind = iota
	// ElementNode carries Name, Attrs and Children.
	ElementNode
)

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is either a text node or an element node.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Text builds a text node.
func Text(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Element builds an element node.
func Element(name string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Name: name, Attrs: attrs, Children: children}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// TextContent concatenates the text below n. Inert elements such as script
// and style contribute nothing.
func (n *Node) TextContent() string {
	var b strings.Builder
	collectText(&b, n)
	return b.String()
}

func collectText(b *strings.Builder, n *Node) {
	if n.Kind == TextNode {
		b.WriteString(n.Text)
		return
	}
	if isInert(n.Name) {
		return
	}
	for _, child := range n.Children {
		collectText(b, child)
	}
}

// Walk calls fn for n and every descendant, parents first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// ParseFragment parses markup as the content of a div element. Comments and
// doctype nodes are discarded.
func ParseFragment(markup string) []*Node {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return []*Node{Text(markup)}
	}
	out := make([]*Node, 0, len(parsed))
	for _, n := range parsed {
		if converted := convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.ElementNode:
		el := &Node{Kind: ElementNode, Name: strings.ToLower(n.Data)}
		if len(n.Attr) > 0 {
			el.Attrs = make([]Attr, 0, len(n.Attr))
			for _, attr := range n.Attr {
				key := attr.Key
				if attr.Namespace != "" {
					key = attr.Namespace + ":" + key
				}
				el.Attrs = append(el.Attrs, Attr{Key: key, Val: attr.Val})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if converted := convert(child); converted != nil {
				el.Children = append(el.Children, converted)
			}
		}
		return el
	}
	return nil
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "<", "&lt;", ">", "&gt;", "\r", "&#13;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", `"`, "&quot;", "\r", "&#13;")
)

// Render serialises nodes the way a browser serialises an element's inner
// HTML.
func Render(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		render(&b, n)
	}
	return b.String()
}

func render(b *strings.Builder, n *Node) {
	if n.Kind == TextNode {
		textEscaper.WriteString(b, n.Text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, attr := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		attrEscaper.WriteString(b, attr.Val)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if _, void := voidElements[n.Name]; void {
		return
	}
	for _, child := range n.Children {
		render(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}
