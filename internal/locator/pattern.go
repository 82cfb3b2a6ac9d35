package locator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"golang.org/x/net/html"
)

// ErrUnsupportedScope is returned when a pattern needs a node representation
// the scope cannot provide.
var ErrUnsupportedScope = errors.New("pattern not applicable to scope")

// Pattern is one structural way of finding nodes below a scope.
type Pattern interface {
	fmt.Stringer
	Match(scope dom.Node) ([]dom.Node, error)
}

type cssPattern struct {
	selector string

	once sync.Once
	sel  cascadia.Sel
	err  error
}

// CSS matches descendants of the scope with a CSS selector.
func CSS(selector string) Pattern {
	return &cssPattern{selector: selector}
}

func (p *cssPattern) String() string {
	return "css:" + p.selector
}

func (p *cssPattern) Match(scope dom.Node) ([]dom.Node, error) {
	p.once.Do(func() {
		p.sel, p.err = cascadia.Parse(p.selector)
	})
	if p.err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", p.selector, p.err)
	}

	raw, ok := dom.Unwrap(scope)
	if !ok {
		return nil, ErrUnsupportedScope
	}
	return wrapAll(cascadia.QueryAll(raw, p.sel)), nil
}

type xpathPattern struct {
	expr string
}

// XPath matches nodes with an XPath expression evaluated relative to the scope.
func XPath(expr string) Pattern {
	return &xpathPattern{expr: expr}
}

func (p *xpathPattern) String() string {
	return "xpath:" + p.expr
}

func (p *xpathPattern) Match(scope dom.Node) ([]dom.Node, error) {
	raw, ok := dom.Unwrap(scope)
	if !ok {
		return nil, ErrUnsupportedScope
	}
	nodes, err := htmlquery.QueryAll(raw, p.expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", p.expr, err)
	}

	out := make([]dom.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode && n != raw {
			out = append(out, dom.Wrap(n))
		}
	}
	return out, nil
}

type funcPattern struct {
	name  string
	match func(dom.Node) bool
}

// Func matches descendants satisfying a predicate. It works on any Node.
func Func(name string, match func(dom.Node) bool) Pattern {
	return &funcPattern{name: name, match: match}
}

func (p *funcPattern) String() string {
	return "func:" + p.name
}

func (p *funcPattern) Match(scope dom.Node) ([]dom.Node, error) {
	var out []dom.Node
	for _, n := range dom.Descendants(scope) {
		if p.match(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

func wrapAll(nodes []*html.Node) []dom.Node {
	out := make([]dom.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dom.Wrap(n))
	}
	return out
}
