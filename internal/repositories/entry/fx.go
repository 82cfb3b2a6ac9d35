package entry

import (
	"context"
	"fmt"

	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/migrations"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Module("entry_repository",
	fx.Provide(NewRepository),
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// NewRepository selects the backing store named by the storage driver.
func NewRepository(opts Opts) (Repository, error) {
	switch opts.Config.Storage.Driver {
	case "", config.StorageMemory:
		opts.Logger.Info("Using in-memory cache store")
		return NewMemory(), nil

	case config.StorageSqlite:
		store, err := OpenSqlite(context.Background(), opts.Config.Sqlite.Path, opts.Logger)
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return store.Close()
			},
		})
		return store, nil

	case config.StoragePostgres:
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return migratePostgres(ctx, opts.Config.PostgresDSN(), opts.Logger)
			},
		})
		return NewPgx(pool, opts.Logger), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Config.Storage.Driver)
	}
}

func migratePostgres(ctx context.Context, dsn string, log logger.Logger) error {
	db, err := migrations.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, db, migrations.Postgres)
	if err != nil {
		return err
	}
	log.Info("Postgres schema ready", "migrations_applied", applied)
	return nil
}
