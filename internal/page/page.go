// Package page provides documents to extract from, either as fixed markup
// supplied by the host or as a live browser page.
package page

import (
	"context"
	"io"
	"strings"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
)

// Page supplies successive snapshots of the document being extracted.
type Page interface {
	URL() string
	Snapshot(ctx context.Context) (dom.Node, error)
	// Scroll moves the viewport down by dy pixels to trigger lazy loading.
	Scroll(ctx context.Context, dy int) error
}

// Opener renders a page for a URL. The returned func releases it.
type Opener interface {
	Open(ctx context.Context, url string) (Page, func(), error)
}

// Static is a page whose markup never changes.
type Static struct {
	url  string
	root dom.Node
}

var _ Page = (*Static)(nil)

func NewStatic(url string, root dom.Node) *Static {
	return &Static{url: url, root: root}
}

// FromHTML parses UTF-8 markup into a static page.
func FromHTML(url, markup string) (*Static, error) {
	return FromReader(url, strings.NewReader(markup), "")
}

// FromReader loads markup with charset handling into a static page.
func FromReader(url string, r io.Reader, contentType string) (*Static, error) {
	root, err := dom.Load(r, contentType)
	if err != nil {
		return nil, err
	}
	return NewStatic(url, root), nil
}

func (s *Static) URL() string {
	return s.url
}

func (s *Static) Snapshot(ctx context.Context) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.root, nil
}

func (s *Static) Scroll(context.Context, int) error {
	return nil
}
