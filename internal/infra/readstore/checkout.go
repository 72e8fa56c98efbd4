package readstore

import (
	"context"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CheckoutReadQueries interface {
	GetCheckout(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Checkouts, error)
	ListCheckouts(ctx context.Context, db pgsql.DBTX, arg pgsql.ListCheckoutsParams) ([]pgsql.Checkouts, error)
}

type CheckoutReadStore struct {
	queries CheckoutReadQueries
	db      pgsql.DBTX
}

func NewCheckoutReadStore(queries CheckoutReadQueries, db pgsql.DBTX) *CheckoutReadStore {
	return &CheckoutReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CheckoutReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CheckoutView, error) {
	row, err := r.queries.GetCheckout(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("checkout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get checkout", err)
	}
	return converter.CheckoutViewFromRow(row), nil
}

func (r *CheckoutReadStore) List(ctx context.Context, filter queries.ListCheckoutsFilter, after *queries.CheckoutKeyset, limit int) ([]*queries.CheckoutView, error) {
	params := pgsql.ListCheckoutsParams{
		SubjectID:  pgconv.StringPtrToPgtype(filter.SubjectID),
		BookIsbn:   pgconv.StringPtrToPgtype(filter.BookID),
		ActiveOnly: filter.ActiveOnly,
		Limit:      pgconv.IntToInt32(limit),
	}
	if after != nil {
		params.AfterDateOut = pgconv.TimeToPgtype(after.DateOut)
		params.AfterID = pgtype.UUID{Bytes: after.ID, Valid: true}
	}

	rows, err := r.queries.ListCheckouts(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list checkouts", err)
	}
	views := make([]*queries.CheckoutView, 0, len(rows))
	for _, row := range rows {
		views = append(views, converter.CheckoutViewFromRow(row))
	}
	return views, nil
}
