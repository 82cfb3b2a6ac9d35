package parserimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/dom"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/locator"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/parser"
)

// ExtractPosts runs one extraction session against pg.
func (p *ParserImpl) ExtractPosts(ctx context.Context, pg page.Page, maxPosts int) (parser.Outcome, error) {
	if maxPosts <= 0 {
		return parser.Outcome{Posts: []domain.Post{}}, nil
	}

	ready, err := p.waitForContainers(ctx, pg)
	if err != nil {
		return parser.Outcome{}, err
	}

	if err := p.scrollAndSettle(ctx, pg); err != nil {
		return parser.Outcome{}, err
	}

	root, err := pg.Snapshot(ctx)
	if err != nil {
		return parser.Outcome{}, fmt.Errorf("failed to snapshot page: %w", err)
	}

	containers := p.Locator.FindAll(p.patterns(locator.RoleContainers), root)
	p.Logger.Info("Found potential post containers", "count", len(containers), "url", pg.URL())

	limit := maxPosts * max(p.Session.LookAheadFactor, 1)
	if limit > len(containers) {
		limit = len(containers)
	}

	out := parser.Outcome{
		Posts:      make([]domain.Post, 0, maxPosts),
		Candidates: len(containers),
		TimedOut:   !ready,
		Root:       root,
	}
	for i := 0; i < limit; i++ {
		out.Considered++
		post, ok := p.ExtractPost(containers[i])
		if !ok {
			p.Logger.Debug("Candidate skipped", "index", i)
			continue
		}
		out.Posts = append(out.Posts, post)
		if len(out.Posts) >= maxPosts {
			break
		}
	}

	p.Logger.Info("Extraction session finished",
		"posts", len(out.Posts),
		"considered", out.Considered,
		"timed_out", out.TimedOut,
	)
	return out, nil
}

// waitForContainers polls until a container pattern matches or the wait
// ceiling passes. Running out of time is not an error.
func (p *ParserImpl) waitForContainers(ctx context.Context, pg page.Page) (bool, error) {
	deadline := p.Clock.Now().Add(p.Session.WaitTimeout)
	for {
		root, err := pg.Snapshot(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to snapshot page: %w", err)
		}
		if p.hasContainers(root) {
			return true, nil
		}
		if !p.Clock.Now().Before(deadline) {
			p.Logger.Warn("Timed out waiting for post containers, proceeding", "timeout", p.Session.WaitTimeout)
			return false, nil
		}
		if err := p.sleep(ctx, p.Session.PollInterval); err != nil {
			return false, err
		}
	}
}

func (p *ParserImpl) hasContainers(root dom.Node) bool {
	return p.Locator.Exists(p.patterns(locator.RoleContainers), root)
}

// scrollAndSettle nudges lazy loading with a fixed number of scrolls.
func (p *ParserImpl) scrollAndSettle(ctx context.Context, pg page.Page) error {
	if p.Session.ScrollSteps <= 0 {
		return nil
	}
	for i := 1; i <= p.Session.ScrollSteps; i++ {
		if err := p.sleep(ctx, p.Session.ScrollInterval); err != nil {
			return err
		}
		if err := pg.Scroll(ctx, p.Session.ScrollDistance); err != nil {
			p.Logger.Warn("Scroll failed", "step", i, "error", err)
		}
	}
	return p.sleep(ctx, p.Session.SettleDelay)
}

func (p *ParserImpl) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.Clock.After(d):
		return nil
	}
}
