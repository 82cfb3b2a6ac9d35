package parserimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

const companyURL = "https://www.linkedin.com/company/acme/posts/"

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.MaxPosts = 5
	cfg.Extractor.LookAheadFactor = 2
	return cfg
}

func newTestParser(t *testing.T, clock clockwork.Clock, cfg *config.Config) *ParserImpl {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	if clock == nil {
		clock = clockwork.NewFakeClockAt(testNow)
	}
	return New(Opts{
		Config: cfg,
		Logger: logger.NewNop(),
		Table:  locator.DefaultTable(),
		Clock:  clock,
	})
}

// wrapPage puts post markup inside a minimal company page body.
func wrapPage(posts string) string {
	return `<html><body><main class="scaffold-layout__main">` + posts + `</main></body></html>`
}

// firstMatch returns the first node matching a css selector.
func firstMatch(t *testing.T, root dom.Node, selector string) dom.Node {
	t.Helper()
	l := locator.New(logger.NewNop())
	n := l.FindOne([]locator.Pattern{locator.CSS(selector)}, root)
	require.NotNil(t, n, "no node for %s", selector)
	return n
}

func staticPage(t *testing.T, markup string) *page.Static {
	t.Helper()
	pg, err := page.FromHTML(companyURL, markup)
	require.NoError(t, err)
	return pg
}

// replayPage serves a fixed sequence of snapshots, repeating the last.
type replayPage struct {
	mu        sync.Mutex
	url       string
	snapshots []dom.Node
	served    int
	scrolls   []int
}

func newReplayPage(url string, markups ...string) *replayPage {
	p := &replayPage{url: url}
	for _, m := range markups {
		p.snapshots = append(p.snapshots, dom.MustParse(m))
	}
	return p
}

func (r *replayPage) URL() string {
	return r.url
}

func (r *replayPage) Snapshot(ctx context.Context) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.served
	if idx >= len(r.snapshots) {
		idx = len(r.snapshots) - 1
	}
	r.served++
	return r.snapshots[idx], nil
}

func (r *replayPage) Scroll(_ context.Context, dy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrolls = append(r.scrolls, dy)
	return nil
}

// panicNode blows up as soon as extraction touches it.
type panicNode struct{}

func (panicNode) Tag() string { return "div" }
func (panicNode) Attr(string) (string, bool) { panic("detached node") }
func (panicNode) Text() string { panic("detached node") }
func (panicNode) Style(string) string { return "" }
func (panicNode) Children() []dom.Node { return nil }
func (panicNode) Parent() dom.Node { return nil }
