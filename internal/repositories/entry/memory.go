package entry

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory keeps records in process. Values are copied on the way in and out.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Get(ctx context.Context, key string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return clone(rec), nil
}

func (m *Memory) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.Key] = clone(rec)
	return nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) (int64, error) {
	return m.deleteWhere(ctx, func(rec Record) bool {
		for _, k := range keys {
			if rec.Key == k {
				return true
			}
		}
		return false
	})
}

func (m *Memory) DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error) {
	return m.deleteWhere(ctx, func(rec Record) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(rec.Key, p) {
				return true
			}
		}
		return false
	})
}

func (m *Memory) DeleteExpired(ctx context.Context, prefix string, now time.Time) (int64, error) {
	return m.deleteWhere(ctx, func(rec Record) bool {
		return strings.HasPrefix(rec.Key, prefix) && rec.ExpiresAt != nil && rec.ExpiresAt.Before(now)
	})
}

func (m *Memory) DeleteCreatedBefore(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	return m.deleteWhere(ctx, func(rec Record) bool {
		return strings.HasPrefix(rec.Key, prefix) && rec.CreatedAt.Before(cutoff)
	})
}

func (m *Memory) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Size(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for k, rec := range m.records {
		total += int64(len(k) + len(rec.Value))
	}
	return total, nil
}

func (m *Memory) deleteWhere(ctx context.Context, match func(Record) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k, rec := range m.records {
		if match(rec) {
			delete(m.records, k)
			n++
		}
	}
	return n, nil
}

func clone(rec Record) Record {
	out := rec
	out.Value = append([]byte(nil), rec.Value...)
	if rec.ExpiresAt != nil {
		exp := *rec.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}
