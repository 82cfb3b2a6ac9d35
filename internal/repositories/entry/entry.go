package entry

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("entry not found")

// Record is one keyed blob in the cache store.
type Record struct {
	Key       string
	Value     []byte
	CreatedAt time.Time
	ExpiresAt *time.Time
}

//go:generate go run go.uber.org/mock/mockgen -source=entry.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the record stored under key or ErrNotFound
	Get(ctx context.Context, key string) (Record, error)

	// Put inserts or replaces the record under its key
	Put(ctx context.Context, rec Record) error

	// Delete removes the given keys and reports how many existed
	Delete(ctx context.Context, keys ...string) (int64, error)

	// DeleteByPrefix removes every key starting with one of the prefixes
	DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error)

	// DeleteExpired removes prefixed records whose expiry is before now
	DeleteExpired(ctx context.Context, prefix string, now time.Time) (int64, error)

	// DeleteCreatedBefore removes prefixed records created before cutoff
	DeleteCreatedBefore(ctx context.Context, prefix string, cutoff time.Time) (int64, error)

	// Keys lists the keys starting with prefix in ascending order
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Size returns the bytes held by all keys and values
	Size(ctx context.Context) (int64, error)
}
