// Package dom exposes the narrow node capabilities the extraction pipeline
// depends on, backed by golang.org/x/net/html trees.
package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is a read-only view of one element in a rendered document.
type Node interface {
	// Tag returns the lower-case element name, or "" for the document root.
	Tag() string
	Attr(name string) (string, bool)
	// Text returns the concatenated text of all descendants.
	Text() string
	// Style returns an inline style declaration value, or "".
	Style(prop string) string
	Children() []Node
	Parent() Node
}

// HTMLBacked is implemented by nodes that can hand out their underlying tree.
type HTMLBacked interface {
	HTML() *html.Node
}

type htmlNode struct {
	n *html.Node
}

var _ Node = (*htmlNode)(nil)
var _ HTMLBacked = (*htmlNode)(nil)

// Wrap adapts an element or document node. Nil yields nil.
func Wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return &htmlNode{n: n}
}

// Unwrap returns the html node behind n when it has one.
func Unwrap(n Node) (*html.Node, bool) {
	hb, ok := n.(HTMLBacked)
	if !ok {
		return nil, false
	}
	raw := hb.HTML()
	return raw, raw != nil
}

func (h *htmlNode) HTML() *html.Node {
	return h.n
}

func (h *htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(h.n.Data)
}

func (h *htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (h *htmlNode) Text() string {
	return goquery.NewDocumentFromNode(h.n).Text()
}

func (h *htmlNode) Style(prop string) string {
	raw, ok := h.Attr("style")
	if !ok {
		return ""
	}
	return StyleValue(raw, prop)
}

func (h *htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &htmlNode{n: c})
		}
	}
	return out
}

func (h *htmlNode) Parent() Node {
	p := h.n.Parent
	if p == nil || (p.Type != html.ElementNode && p.Type != html.DocumentNode) {
		return nil
	}
	return &htmlNode{n: p}
}

// StyleValue looks up prop in an inline style declaration list.
func StyleValue(decls, prop string) string {
	prop = strings.ToLower(strings.TrimSpace(prop))
	for _, decl := range splitDeclarations(decls) {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(name)) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// splitDeclarations splits on semicolons outside parentheses so data URIs in
// url(...) survive.
func splitDeclarations(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

// Descendants returns every element below n in document order.
func Descendants(n Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		for _, c := range cur.Children() {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Closest returns n or its nearest ancestor satisfying match.
func Closest(n Node, match func(Node) bool) Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Tag() != "" && match(cur) {
			return cur
		}
	}
	return nil
}

// AttrOr returns the attribute value or fallback when absent.
func AttrOr(n Node, name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}

// IntAttr parses a numeric attribute such as width, ignoring a trailing "px".
func IntAttr(n Node, name string) int {
	v, ok := n.Attr(name)
	if !ok {
		return 0
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return i
}

// ClassContains reports whether the class attribute contains fragment as a substring.
func ClassContains(n Node, fragment string) bool {
	return strings.Contains(AttrOr(n, "class", ""), fragment)
}
