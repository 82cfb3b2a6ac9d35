package dom

import (
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs is a convenience attribute set for synthetic trees.
type Attrs map[string]string

// Item is either an element built by El or a text run built by T.
type Item struct {
	n *html.Node
}

// El builds a synthetic element with the given attributes and children.
func El(tag string, attrs Attrs, children ...Item) Item {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}

	for _, c := range children {
		n.AppendChild(c.n)
	}
	return Item{n: n}
}

// T builds a text run.
func T(text string) Item {
	return Item{n: &html.Node{Type: html.TextNode, Data: text}}
}

// Doc wraps top-level items in a document root.
func Doc(items ...Item) Node {
	root := &html.Node{Type: html.DocumentNode}
	for _, it := range items {
		root.AppendChild(it.n)
	}
	return Wrap(root)
}

// Node returns the built element as a Node.
func (i Item) Node() Node {
	return Wrap(i.n)
}
