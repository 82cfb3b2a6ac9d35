package commandimpl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/cache"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser/parserimpl"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

const acmeURL = "https://www.linkedin.com/company/acme/posts/"

var start = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	cmd   *CommandImpl
	repo  entry.Repository
	clock *clockwork.FakeClock
	cfg   *config.Config
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.MaxPosts = 5
	cfg.Extractor.LookAheadFactor = 2
	cfg.Cache.SourceTTL = time.Hour
	cfg.Cache.HandoffMaxAge = 24 * time.Hour
	cfg.Cache.QuotaBytes = 10485760
	cfg.Cache.MaxStored = 5
	return cfg
}

func newFixture(t *testing.T, repo entry.Repository, pages page.Opener) *fixture {
	t.Helper()
	if repo == nil {
		repo = entry.NewMemory()
	}
	cfg := testConfig()
	clock := clockwork.NewFakeClockAt(start)
	log := logger.NewNop()

	p := parserimpl.New(parserimpl.Opts{
		Config: cfg,
		Logger: log,
		Table:  locator.DefaultTable(),
		Clock:  clock,
	})

	cmd := New(Opts{
		Parser:   p,
		Pages:    pages,
		Sources:  cache.NewSources(repo, clock, log),
		Handoffs: cache.NewHandoffs(repo, clock, log),
		Entries:  repo,
		Logger:   log,
		Config:   cfg,
		Clock:    clock,
	})
	return &fixture{cmd: cmd, repo: repo, clock: clock, cfg: cfg}
}

const acmeHeader = `
<section class="org-top-card">
  <div class="org-top-card-summary__logo"><img src="https://cdn.example.com/logo.png"></div>
  <h1 class="org-top-card-summary__title">Acme Corp</h1>
</section>`

// companyPage renders a company page with n text posts.
func companyPage(n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(acmeHeader)
	b.WriteString("<main>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div class="feed-shared-update-v2" data-id="urn:li:activity:%d">
		  <span class="update-components-actor__name">Acme Corp</span>
		  <div class="feed-shared-text">Update number %d hashtag#news</div>
		</div>`, i, i)
	}
	b.WriteString("</main></body></html>")
	return b.String()
}

// gateOpener renders fixed markup once release is closed.
type gateOpener struct {
	markup  string
	entered chan struct{}
	release chan struct{}
}

func newGateOpener(markup string) *gateOpener {
	return &gateOpener{markup: markup, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateOpener) Open(ctx context.Context, url string) (page.Page, func(), error) {
	close(g.entered)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	pg, err := page.FromHTML(url, g.markup)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() {}, nil
}
