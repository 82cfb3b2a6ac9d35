package commandimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

// Prefetch extracts several pages with a bounded worker pool so later requests
// hit the cache. Pages are rendered by the browser and fail independently.
func (c *CommandImpl) Prefetch(ctx context.Context, urls []string, maxPosts int) ([]command.PrefetchResult, error) {
	if len(urls) == 0 {
		return nil, errors.InvalidInput("at least one url is required")
	}

	workers := c.Config.Extractor.PrefetchWorkers
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create prefetch pool: %w", err)
	}
	defer pool.Release()

	results := make([]command.PrefetchResult, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		results[i].URL = url
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Error = err.Error()
				return
			}

			res, err := c.ExtractPosts(ctx, command.ExtractRequest{URL: url, MaxPosts: maxPosts})
			results[i].Posts = len(res.Posts)
			results[i].FromCache = res.FromCache
			if err != nil {
				c.Logger.Warn("Prefetch failed", "url", url, "error", err)
				results[i].Error = err.Error()
				results[i].Code = errors.GetCode(err)
			}
		})
		if err != nil {
			wg.Done()
			c.Logger.Error("Failed to submit prefetch job", "url", url, "error", err)
			results[i].Error = err.Error()
		}
	}
	wg.Wait()

	c.Logger.Info("Prefetch finished", "pages", len(urls), "workers", workers)
	return results, nil
}
