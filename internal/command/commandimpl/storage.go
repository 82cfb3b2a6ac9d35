package commandimpl

import (
	"context"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/cache"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/formatter"
)

// ClearCache removes cached results, pending handoffs and media entries.
func (c *CommandImpl) ClearCache(ctx context.Context) (int64, error) {
	n, err := c.Entries.DeleteByPrefix(ctx, cache.SourcePrefix, cache.SessionPrefix, cache.MediaPrefix)
	if err != nil {
		return 0, errors.Storage(err, "failed to clear cache")
	}
	c.Logger.Info("Cache cleared", "removed", n)
	return n, nil
}

func (c *CommandImpl) GetStorageUsage(ctx context.Context) (domain.StorageUsage, error) {
	used, err := c.Entries.Size(ctx)
	if err != nil {
		return domain.StorageUsage{}, errors.Storage(err, "failed to measure storage")
	}
	total := c.Config.Cache.QuotaBytes
	return domain.StorageUsage{
		Used:       used,
		Total:      total,
		Percentage: formatter.Percentage(used, total),
		UsedHuman:  formatter.FormatBytes(used),
		TotalHuman: formatter.FormatBytes(total),
	}, nil
}

// Sweep drops expired results and handoffs older than the configured age.
func (c *CommandImpl) Sweep(ctx context.Context) (command.SweepReport, error) {
	var report command.SweepReport

	n, err := c.Sources.SweepExpired(ctx)
	if err != nil {
		return report, err
	}
	report.Sources = n
	c.Metrics.SweptEntries("source", int(n))

	n, err = c.Handoffs.SweepStale(ctx, c.Config.Cache.HandoffMaxAge)
	if err != nil {
		return report, err
	}
	report.Sessions = n
	c.Metrics.SweptEntries("session", int(n))

	return report, nil
}
