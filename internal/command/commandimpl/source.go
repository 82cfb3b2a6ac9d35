package commandimpl

import (
	"context"
	"strings"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/page"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

// CheckSource reports whether the page is a company page and what it shows in
// its header. Without markup or a browser only the id-derived fields are set.
func (c *CommandImpl) CheckSource(ctx context.Context, req command.SourceRequest) (domain.SourceInfo, error) {
	if strings.TrimSpace(req.URL) == "" {
		return domain.SourceInfo{}, errors.InvalidInput("url is required")
	}
	if _, ok := domain.SourceIDFromURL(req.URL); !ok {
		return domain.SourceInfo{IsEligible: false, URL: req.URL}, nil
	}

	pg, closePage, err := c.openPage(ctx, req.URL, req.HTML, req.ContentType)
	if err != nil {
		if errors.Is(err, page.ErrBrowserDisabled) {
			return c.Parser.SourceInfo(req.URL, nil), nil
		}
		return domain.SourceInfo{}, err
	}
	defer closePage()

	root, err := pg.Snapshot(ctx)
	if err != nil {
		c.Logger.Warn("Failed to snapshot page for source info", "url", req.URL, "error", err)
		return c.Parser.SourceInfo(req.URL, nil), nil
	}
	return c.Parser.SourceInfo(req.URL, root), nil
}

// GetCachedData returns the live cached posts for sourceID.
func (c *CommandImpl) GetCachedData(ctx context.Context, sourceID string) ([]domain.Post, bool, error) {
	if strings.TrimSpace(sourceID) == "" {
		return nil, false, errors.InvalidInput("source id is required")
	}
	entry, ok, err := c.Sources.Get(ctx, sourceID)
	if err != nil {
		return nil, false, err
	}
	c.Metrics.CacheLookup(ok && len(entry.Posts) > 0)
	if !ok || len(entry.Posts) == 0 {
		return nil, false, nil
	}
	return entry.Posts, true, nil
}
