package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"library-circulation/internal/infra/db"
	"library-circulation/internal/infra/docstore"
	"library-circulation/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// Connections carries the one connection selected by STORE_DRIVER. The other
// field is provided as nil.
type Connections struct {
	fx.Out

	Pool *pgxpool.Pool
	Docs *sqlx.DB
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (Connections, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var (
		conns   Connections
		cleanup func()
		err     error
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		conns.Pool, cleanup, err = db.Connect(ctx, cfg.DB)
	case config.StoreDriverSQLite:
		conns.Docs, cleanup, err = docstore.Open(ctx, cfg.SQLite)
	default:
		err = fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	if err != nil {
		return Connections{}, err
	}
	slog.Info("store connected", slog.String("driver", cfg.Store.Driver))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return conns, nil
}
