package entry

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/repositories"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

const table = "cache_entries"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("EntryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, key string) (Record, error) {
	query, args, err := repositories.SqBuilder.
		Select("key", "value", "created_at", "expires_at").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return Record{}, repositories.ErrBadQuery
	}

	var rec Record
	err = p.pg.QueryRow(ctx, query, args...).Scan(&rec.Key, &rec.Value, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (p *Pgx) Put(ctx context.Context, rec Record) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("key", "value", "created_at", "expires_at").
		Values(rec.Key, rec.Value, rec.CreatedAt, rec.ExpiresAt).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

func (p *Pgx) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return p.delete(ctx, sq.Eq{"key": keys})
}

func (p *Pgx) DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}
	or := sq.Or{}
	for _, prefix := range prefixes {
		or = append(or, sq.Like{"key": repositories.LikePrefix(prefix)})
	}
	return p.delete(ctx, or)
}

func (p *Pgx) DeleteExpired(ctx context.Context, prefix string, now time.Time) (int64, error) {
	return p.delete(ctx, sq.And{
		sq.Like{"key": repositories.LikePrefix(prefix)},
		sq.NotEq{"expires_at": nil},
		sq.Lt{"expires_at": now},
	})
}

func (p *Pgx) DeleteCreatedBefore(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	return p.delete(ctx, sq.And{
		sq.Like{"key": repositories.LikePrefix(prefix)},
		sq.Lt{"created_at": cutoff},
	})
}

func (p *Pgx) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := repositories.SqBuilder.
		Select("key").
		From(table).
		Where(sq.Like{"key": repositories.LikePrefix(prefix)}).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (p *Pgx) Size(ctx context.Context) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("COALESCE(SUM(octet_length(key) + octet_length(value)), 0)").
		From(table).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var size int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&size); err != nil {
		return 0, err
	}
	return size, nil
}

func (p *Pgx) delete(ctx context.Context, where sq.Sqlizer) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(where).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if n := tag.RowsAffected(); n > 0 {
		p.logger.Debug("Deleted cache entries", "count", n)
	}
	return tag.RowsAffected(), nil
}
