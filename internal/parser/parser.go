package parser

import (
	"context"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
)

// Outcome is the result of one extraction pass over a page.
type Outcome struct {
	Posts []domain.Post
	// Candidates is how many container nodes the page exposed.
	Candidates int
	// Considered is how many of them went through post extraction.
	Considered int
	// TimedOut is set when no container appeared before the wait ceiling.
	TimedOut bool
	// Root is the snapshot the posts were read from.
	Root dom.Node
}

type Client interface {
	// ExtractPosts waits for content, scrolls to load more and collects up to maxPosts posts.
	ExtractPosts(ctx context.Context, p page.Page, maxPosts int) (Outcome, error)
	// ExtractPost turns one candidate node into a post, or reports it rejected.
	ExtractPost(candidate dom.Node) (domain.Post, bool)
	ClassifyMedia(candidate dom.Node) domain.MediaBundle
	SourceInfo(url string, root dom.Node) domain.SourceInfo
}
