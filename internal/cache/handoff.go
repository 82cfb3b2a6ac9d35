package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories/entry"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

// Handoffs stores one-shot session_<unixMillis> records for the display side.
type Handoffs struct {
	repo   entry.Repository
	clock  clockwork.Clock
	logger logger.Logger

	mu   sync.Mutex
	last int64
}

func NewHandoffs(repo entry.Repository, clock clockwork.Clock, log logger.Logger) *Handoffs {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handoffs{
		repo:   repo,
		clock:  clock,
		logger: log.WithComponent("Handoffs"),
	}
}

// Save stores h under a fresh key and returns the key.
func (s *Handoffs) Save(ctx context.Context, h domain.Handoff) (string, error) {
	now := s.clock.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}

	data, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("failed to encode handoff: %w", err)
	}

	key := SessionPrefix + strconv.FormatInt(s.nextStamp(now), 10)
	if err := s.repo.Put(ctx, entry.Record{Key: key, Value: data, CreatedAt: now}); err != nil {
		return "", errors.Storage(err, fmt.Sprintf("failed to write %s", key))
	}

	s.logger.Info("Stored session handoff", "key", key, "posts", len(h.Posts))
	return key, nil
}

// Consume returns the handoff under key and deletes it.
func (s *Handoffs) Consume(ctx context.Context, key string) (domain.Handoff, error) {
	if !strings.HasPrefix(key, SessionPrefix) || len(key) == len(SessionPrefix) {
		return domain.Handoff{}, errors.InvalidInput(fmt.Sprintf("invalid session key %q", key))
	}

	rec, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			return domain.Handoff{}, errors.WrapWithCode(errors.ErrNotFound, errors.CodeNotFound, fmt.Sprintf("session %q", key))
		}
		return domain.Handoff{}, errors.Storage(err, fmt.Sprintf("failed to read %s", key))
	}

	if _, err := s.repo.Delete(ctx, key); err != nil {
		return domain.Handoff{}, errors.Storage(err, fmt.Sprintf("failed to delete %s", key))
	}

	var h domain.Handoff
	if err := json.Unmarshal(rec.Value, &h); err != nil {
		return domain.Handoff{}, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return h, nil
}

// SweepStale removes handoffs created more than maxAge ago.
func (s *Handoffs) SweepStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	n, err := s.repo.DeleteCreatedBefore(ctx, SessionPrefix, s.clock.Now().Add(-maxAge))
	if err != nil {
		return 0, errors.Storage(err, "failed to sweep session handoffs")
	}
	if n > 0 {
		s.logger.Info("Swept stale session handoffs", "count", n)
	}
	return n, nil
}

// nextStamp keeps keys unique when two handoffs land in the same millisecond.
func (s *Handoffs) nextStamp(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := now.UnixMilli()
	if stamp <= s.last {
		stamp = s.last + 1
	}
	s.last = stamp
	return stamp
}
