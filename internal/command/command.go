package command

import (
	"context"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
)

// ExtractRequest asks for the recent posts of one company page.
type ExtractRequest struct {
	URL string
	// HTML is the rendered page supplied by the host. When empty the page is
	// rendered with the browser, if one is configured.
	HTML        string
	ContentType string
	MaxPosts    int
	// Refresh skips the cached result and replaces it.
	Refresh bool
}

// SourceRequest identifies the page checkSource inspects.
type SourceRequest struct {
	URL         string
	HTML        string
	ContentType string
}

type SweepReport struct {
	Sources  int64 `json:"sources"`
	Sessions int64 `json:"sessions"`
}

// PrefetchResult is the outcome of warming the cache for one page.
type PrefetchResult struct {
	URL       string `json:"url"`
	Posts     int    `json:"posts"`
	FromCache bool   `json:"fromCache"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

//go:generate go run go.uber.org/mock/mockgen -source=command.go -destination=mocks/mock.go
type Client interface {
	ExtractPosts(ctx context.Context, req ExtractRequest) (domain.ExtractionResult, error)
	RefreshPosts(ctx context.Context, req ExtractRequest) (domain.ExtractionResult, error)
	CheckSource(ctx context.Context, req SourceRequest) (domain.SourceInfo, error)
	GetCachedData(ctx context.Context, sourceID string) ([]domain.Post, bool, error)
	NotifyContentChanged(ctx context.Context, sourceID string) error
	ClearCache(ctx context.Context) (int64, error)
	GetStorageUsage(ctx context.Context) (domain.StorageUsage, error)
	OpenOverlay(ctx context.Context, result domain.ExtractionResult, settings domain.Settings) (string, error)
	ConsumeSession(ctx context.Context, key string) (domain.Handoff, error)
	Sweep(ctx context.Context) (SweepReport, error)
	Prefetch(ctx context.Context, urls []string, maxPosts int) ([]PrefetchResult, error)
}
