package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/migrations"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"

	_ "modernc.org/sqlite"
)

// Sqlite stores records in a single file. Timestamps are unix milliseconds.
type Sqlite struct {
	db     *sql.DB
	logger logger.Logger
}

// OpenSqlite opens or creates the database at path and applies migrations.
func OpenSqlite(ctx context.Context, path string, log logger.Logger) (*Sqlite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Concurrent writers get SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	applied, err := migrations.Up(ctx, db, migrations.SQLite)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Sqlite{db: db, logger: log.WithComponent("EntryRepo")}
	s.logger.Info("Opened sqlite store", "path", path, "migrations_applied", applied)
	return s, nil
}

var _ Repository = (*Sqlite)(nil)

func (s *Sqlite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Sqlite) Get(ctx context.Context, key string) (Record, error) {
	query, args, err := repositories.SqliteBuilder.
		Select("key", "value", "created_at", "expires_at").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return Record{}, repositories.ErrBadQuery
	}

	var (
		rec       Record
		createdAt int64
		expiresAt sql.NullInt64
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&rec.Key, &rec.Value, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	if expiresAt.Valid {
		exp := time.UnixMilli(expiresAt.Int64).UTC()
		rec.ExpiresAt = &exp
	}
	return rec, nil
}

func (s *Sqlite) Put(ctx context.Context, rec Record) error {
	var expiresAt sql.NullInt64
	if rec.ExpiresAt != nil {
		expiresAt = sql.NullInt64{Int64: rec.ExpiresAt.UnixMilli(), Valid: true}
	}

	query, args, err := repositories.SqliteBuilder.
		Insert(table).
		Columns("key", "value", "created_at", "expires_at").
		Values(rec.Key, rec.Value, rec.CreatedAt.UnixMilli(), expiresAt).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at, expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *Sqlite) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.delete(ctx, sq.Eq{"key": keys})
}

func (s *Sqlite) DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}
	or := sq.Or{}
	for _, prefix := range prefixes {
		or = append(or, hasPrefix(prefix))
	}
	return s.delete(ctx, or)
}

func (s *Sqlite) DeleteExpired(ctx context.Context, prefix string, now time.Time) (int64, error) {
	return s.delete(ctx, sq.And{
		hasPrefix(prefix),
		sq.NotEq{"expires_at": nil},
		sq.Lt{"expires_at": now.UnixMilli()},
	})
}

func (s *Sqlite) DeleteCreatedBefore(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	return s.delete(ctx, sq.And{
		hasPrefix(prefix),
		sq.Lt{"created_at": cutoff.UnixMilli()},
	})
}

func (s *Sqlite) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := repositories.SqliteBuilder.
		Select("key").
		From(table).
		Where(hasPrefix(prefix)).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *Sqlite) Size(ctx context.Context) (int64, error) {
	query, args, err := repositories.SqliteBuilder.
		Select("COALESCE(SUM(length(CAST(key AS BLOB)) + length(value)), 0)").
		From(table).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var size int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&size); err != nil {
		return 0, err
	}
	return size, nil
}

func (s *Sqlite) delete(ctx context.Context, where sq.Sqlizer) (int64, error) {
	query, args, err := repositories.SqliteBuilder.
		Delete(table).
		Where(where).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("Deleted cache entries", "count", n)
	}
	return n, nil
}

// hasPrefix avoids LIKE, which is case-insensitive in sqlite.
func hasPrefix(prefix string) sq.Sqlizer {
	return sq.Expr("substr(key, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)
}
