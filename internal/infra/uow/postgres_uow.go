package uow

import (
	"context"
	"errors"
	"log/slog"

	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *pgsql.Queries
	policy retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgsql.Queries, cfg config.TxConfig) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		policy: newRetryPolicy(cfg),
	}
}

// ReadCommitted is enough: every count change is a guarded single-row UPDATE that
// re-evaluates its condition against the latest committed row.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.policy.run(ctx, "postgres", func() error {
		return u.runOnce(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	})
}

func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx, q: u.q})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

type pgTx struct {
	dbtx pgsql.DBTX
	q    *pgsql.Queries

	// Lazy-initialized repositories
	bookRepo     shared.BookRepository
	checkoutRepo shared.CheckoutRepository
	userRepo     shared.UserRepository
}

func (t *pgTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = repository.NewBookRepository(t.q, t.dbtx)
	}
	return t.bookRepo
}

func (t *pgTx) Checkouts() shared.CheckoutRepository {
	if t.checkoutRepo == nil {
		t.checkoutRepo = repository.NewCheckoutRepository(t.q, t.dbtx)
	}
	return t.checkoutRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.q, t.dbtx)
	}
	return t.userRepo
}
