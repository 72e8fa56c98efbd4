package uow

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/docstore"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/shared"

	"github.com/jmoiron/sqlx"
)

// DocumentUoW runs transitions against the SQLite document store. Begin takes the
// write lock (_txlock=immediate), and every document write is revision-checked.
type DocumentUoW struct {
	db     *sqlx.DB
	clock  clock.Clock
	policy retryPolicy
}

func NewDocumentUoW(db *sqlx.DB, clk clock.Clock, cfg config.TxConfig) *DocumentUoW {
	return &DocumentUoW{
		db:     db,
		clock:  clk,
		policy: newRetryPolicy(cfg),
	}
}

func (u *DocumentUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.policy.run(ctx, "sqlite", func() error {
		return u.runOnce(ctx, fn)
	})
}

func (u *DocumentUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	sqlTx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		if infra.IsTransient(err) {
			return infra.WrapRepoErr("database busy", err, infra.KindConflict)
		}
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &docTx{tx: sqlTx, clock: u.clock})
	if err == nil {
		if err = sqlTx.Commit(); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := sqlTx.Rollback(); rollbackErr != nil {
		if !errors.Is(rollbackErr, sql.ErrTxDone) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

type docTx struct {
	tx    *sqlx.Tx
	clock clock.Clock

	bookRepo     shared.BookRepository
	checkoutRepo shared.CheckoutRepository
	userRepo     shared.UserRepository
}

func (t *docTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = docstore.NewBookRepository(t.tx, t.clock)
	}
	return t.bookRepo
}

func (t *docTx) Checkouts() shared.CheckoutRepository {
	if t.checkoutRepo == nil {
		t.checkoutRepo = docstore.NewCheckoutRepository(t.tx, t.clock)
	}
	return t.checkoutRepo
}

func (t *docTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = docstore.NewUserRepository(t.tx)
	}
	return t.userRepo
}
