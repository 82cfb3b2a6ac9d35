package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

const (
	SourcePrefix  = "source_"
	SessionPrefix = "session_"
	MediaPrefix   = "media_"
)

// Expiring maps ids under a fixed key prefix to JSON values with an absolute expiry.
type Expiring[V any] struct {
	prefix string
	repo   entry.Repository
	clock  clockwork.Clock
	logger logger.Logger
}

func NewExpiring[V any](prefix string, repo entry.Repository, clock clockwork.Clock, log logger.Logger) *Expiring[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Expiring[V]{
		prefix: prefix,
		repo:   repo,
		clock:  clock,
		logger: log.WithComponent("Cache"),
	}
}

func (c *Expiring[V]) Key(id string) string {
	return c.prefix + id
}

// Get returns the live value for id. An expired or unreadable entry is removed
// and reported as a miss.
func (c *Expiring[V]) Get(ctx context.Context, id string) (V, bool, error) {
	var zero V
	key := c.Key(id)

	rec, err := c.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, errors.Storage(err, fmt.Sprintf("failed to read %s", key))
	}

	if rec.ExpiresAt != nil && c.clock.Now().After(*rec.ExpiresAt) {
		c.logger.Debug("Cache entry expired", "key", key, "expired_at", rec.ExpiresAt)
		c.evict(ctx, key)
		return zero, false, nil
	}

	var v V
	if err := json.Unmarshal(rec.Value, &v); err != nil {
		c.logger.Warn("Dropping unreadable cache entry", "key", key, "error", err)
		c.evict(ctx, key)
		return zero, false, nil
	}
	return v, true, nil
}

// Set stores v for ttl. A non-positive ttl stores without expiry.
func (c *Expiring[V]) Set(ctx context.Context, id string, v V, ttl time.Duration) error {
	key := c.Key(id)
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	now := c.clock.Now().UTC()
	rec := entry.Record{Key: key, Value: data, CreatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		rec.ExpiresAt = &exp
	}

	if err := c.repo.Put(ctx, rec); err != nil {
		return errors.Storage(err, fmt.Sprintf("failed to write %s", key))
	}
	return nil
}

// Invalidate removes id and reports whether an entry existed.
func (c *Expiring[V]) Invalidate(ctx context.Context, id string) (bool, error) {
	n, err := c.repo.Delete(ctx, c.Key(id))
	if err != nil {
		return false, errors.Storage(err, fmt.Sprintf("failed to delete %s", c.Key(id)))
	}
	return n > 0, nil
}

// SweepExpired removes every entry under the prefix whose expiry has passed.
func (c *Expiring[V]) SweepExpired(ctx context.Context) (int64, error) {
	n, err := c.repo.DeleteExpired(ctx, c.prefix, c.clock.Now())
	if err != nil {
		return 0, errors.Storage(err, fmt.Sprintf("failed to sweep %s", c.prefix))
	}
	if n > 0 {
		c.logger.Info("Swept expired cache entries", "count", n)
	}
	return n, nil
}

func (c *Expiring[V]) evict(ctx context.Context, key string) {
	if _, err := c.repo.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to evict cache entry", "key", key, "error", err)
	}
}
