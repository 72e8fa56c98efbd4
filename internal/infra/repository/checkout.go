package repository

import (
	"context"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CheckoutWriteQueries interface {
	CreateCheckout(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateCheckoutParams) error
	GetCheckoutForUpdate(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Checkouts, error)
	MarkCheckoutReturned(ctx context.Context, db pgsql.DBTX, arg pgsql.MarkCheckoutReturnedParams) (int64, error)
	CountActiveCheckoutsByBook(ctx context.Context, db pgsql.DBTX, bookIsbn string) (int64, error)
}

type CheckoutRepository struct {
	queries CheckoutWriteQueries
	db      pgsql.DBTX
}

func NewCheckoutRepository(queries CheckoutWriteQueries, db pgsql.DBTX) *CheckoutRepository {
	return &CheckoutRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CheckoutRepository) Create(ctx context.Context, c *checkout.Checkout) error {
	if err := r.queries.CreateCheckout(ctx, r.db, converter.CheckoutToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create checkout", err)
	}
	return nil
}

func (r *CheckoutRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkout.Checkout, error) {
	row, err := r.queries.GetCheckoutForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("checkout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find checkout", err)
	}
	return converter.CheckoutFromRow(row), nil
}

func (r *CheckoutRepository) MarkReturned(ctx context.Context, id uuid.UUID, dateIn time.Time) error {
	n, err := r.queries.MarkCheckoutReturned(ctx, r.db, pgsql.MarkCheckoutReturnedParams{
		ID:     id,
		DateIn: pgconv.TimeToPgtype(dateIn),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark checkout returned", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("checkout is no longer active", nil, infra.KindConflict)
	}
	return nil
}

func (r *CheckoutRepository) CountActiveByBook(ctx context.Context, isbn book.ISBN) (int, error) {
	n, err := r.queries.CountActiveCheckoutsByBook(ctx, r.db, isbn.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active checkouts", err)
	}
	return int(n), nil
}
