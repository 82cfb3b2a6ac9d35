package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

const (
	maxPostsCeiling = 20

	resultSuccess   = "success"
	resultCached    = "cached"
	resultNoContent = "no_content"
	resultFailed    = "failed"
)

// ExtractPosts returns the recent posts of the requested company page, from
// cache when a live entry exists. A storage failure while memoizing is
// returned together with the extracted result.
func (c *CommandImpl) ExtractPosts(ctx context.Context, req command.ExtractRequest) (domain.ExtractionResult, error) {
	sourceID, ok := domain.SourceIDFromURL(req.URL)
	if !ok {
		return domain.ExtractionResult{}, errors.NotEligible(req.URL)
	}

	maxPosts, err := c.maxPosts(req.MaxPosts)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	release, ok := c.acquire(sourceID)
	if !ok {
		c.Logger.Warn("Extraction already running", "source", sourceID)
		return domain.ExtractionResult{}, errors.InProgress(sourceID)
	}
	defer release()

	if !req.Refresh {
		if result, hit := c.cached(ctx, sourceID, req.URL, maxPosts); hit {
			return result, nil
		}
	}

	return c.extract(ctx, sourceID, req, maxPosts)
}

// RefreshPosts drops the cached result for the page and extracts again.
func (c *CommandImpl) RefreshPosts(ctx context.Context, req command.ExtractRequest) (domain.ExtractionResult, error) {
	if sourceID, ok := domain.SourceIDFromURL(req.URL); ok {
		if _, err := c.Sources.Invalidate(ctx, sourceID); err != nil {
			c.Logger.Warn("Failed to invalidate cached posts", "source", sourceID, "error", err)
		}
	}
	req.Refresh = true
	return c.ExtractPosts(ctx, req)
}

// NotifyContentChanged invalidates the cached result after the page changed.
func (c *CommandImpl) NotifyContentChanged(ctx context.Context, sourceID string) error {
	if strings.TrimSpace(sourceID) == "" {
		return errors.InvalidInput("source id is required")
	}
	removed, err := c.Sources.Invalidate(ctx, sourceID)
	if err != nil {
		return err
	}
	c.Logger.Info("Content changed, cache invalidated", "source", sourceID, "removed", removed)
	return nil
}

func (c *CommandImpl) maxPosts(requested int) (int, error) {
	switch {
	case requested == 0:
		return c.Config.Extractor.MaxPosts, nil
	case requested < 0 || requested > maxPostsCeiling:
		return 0, errors.InvalidInput(fmt.Sprintf("maxPosts must be between 1 and %d", maxPostsCeiling))
	default:
		return requested, nil
	}
}

// cached serves a live cache entry. Read failures count as a miss.
func (c *CommandImpl) cached(ctx context.Context, sourceID, url string, maxPosts int) (domain.ExtractionResult, bool) {
	entry, ok, err := c.Sources.Get(ctx, sourceID)
	if err != nil {
		c.Logger.Warn("Cache read failed, extracting instead", "source", sourceID, "error", err)
		ok = false
	}
	if !ok || len(entry.Posts) == 0 {
		c.Metrics.CacheLookup(false)
		return domain.ExtractionResult{}, false
	}
	c.Metrics.CacheLookup(true)

	info := c.Parser.SourceInfo(url, nil)
	if entry.Source != nil {
		info = *entry.Source
	}

	posts := entry.Posts
	if len(posts) > maxPosts {
		posts = posts[:maxPosts]
	}

	c.Logger.Info("Serving posts from cache", "source", sourceID, "posts", len(posts), "expires_at", entry.ExpiresAt)
	c.Metrics.Extraction(resultCached, 0)
	return domain.ExtractionResult{
		Posts:       posts,
		Source:      info,
		ExtractedAt: entry.CreatedAt,
		TotalFound:  len(posts),
		FromCache:   true,
	}, true
}

func (c *CommandImpl) extract(ctx context.Context, sourceID string, req command.ExtractRequest, maxPosts int) (domain.ExtractionResult, error) {
	started := c.Clock.Now()

	pg, closePage, err := c.openPage(ctx, req.URL, req.HTML, req.ContentType)
	if err != nil {
		c.Metrics.Extraction(resultFailed, c.Clock.Since(started))
		return domain.ExtractionResult{}, err
	}
	defer closePage()

	outcome, err := c.Parser.ExtractPosts(ctx, pg, maxPosts)
	if err != nil {
		c.Metrics.Extraction(resultFailed, c.Clock.Since(started))
		return domain.ExtractionResult{}, fmt.Errorf("failed to extract posts for %s: %w", sourceID, err)
	}

	info := c.Parser.SourceInfo(req.URL, outcome.Root)

	if len(outcome.Posts) == 0 {
		c.Logger.Warn("No suitable posts found",
			"source", sourceID,
			"candidates", outcome.Candidates,
			"timed_out", outcome.TimedOut,
		)
		c.Metrics.Extraction(resultNoContent, c.Clock.Since(started))
		return domain.ExtractionResult{}, errors.NoContent(sourceID)
	}

	now := c.Clock.Now().UTC()
	result := domain.ExtractionResult{
		Posts:       outcome.Posts,
		Source:      info,
		ExtractedAt: now,
		TotalFound:  len(outcome.Posts),
	}

	c.Metrics.Extraction(resultSuccess, c.Clock.Since(started))
	c.Logger.Info("Extracted posts", "source", sourceID, "posts", len(result.Posts), "considered", outcome.Considered)

	if err := c.store(ctx, sourceID, result); err != nil {
		c.Logger.Error("Failed to cache extracted posts", "source", sourceID, "error", err)
		return result, err
	}
	return result, nil
}

func (c *CommandImpl) store(ctx context.Context, sourceID string, result domain.ExtractionResult) error {
	posts := result.Posts
	if limit := c.Config.Cache.MaxStored; limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	ttl := c.Config.Cache.SourceTTL
	info := result.Source
	return c.Sources.Set(ctx, sourceID, domain.CachedPosts{
		Posts:     posts,
		CreatedAt: result.ExtractedAt,
		ExpiresAt: result.ExtractedAt.Add(ttl),
		Source:    &info,
	}, ttl)
}

// openPage prefers host-supplied markup and falls back to the browser.
func (c *CommandImpl) openPage(ctx context.Context, url, markup, contentType string) (page.Page, func(), error) {
	if markup != "" {
		pg, err := page.FromReader(url, strings.NewReader(markup), contentType)
		if err != nil {
			return nil, nil, errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, fmt.Sprintf("unreadable page markup: %v", err))
		}
		return pg, func() {}, nil
	}

	pg, closePage, err := c.Pages.Open(ctx, url)
	if err != nil {
		if errors.Is(err, page.ErrBrowserDisabled) {
			return nil, nil, errors.Unavailable(err, "page markup is required")
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return pg, closePage, nil
}
