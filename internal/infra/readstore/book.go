package readstore

import (
	"context"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type BookReadQueries interface {
	GetBook(ctx context.Context, db pgsql.DBTX, isbn string) (pgsql.Books, error)
	ListBooks(ctx context.Context, db pgsql.DBTX, arg pgsql.ListBooksParams) ([]pgsql.Books, error)
}

type BookReadStore struct {
	queries BookReadQueries
	db      pgsql.DBTX
}

func NewBookReadStore(queries BookReadQueries, db pgsql.DBTX) *BookReadStore {
	return &BookReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookReadStore) FindByID(ctx context.Context, isbn string) (*queries.BookView, error) {
	row, err := r.queries.GetBook(ctx, r.db, isbn)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get book", err)
	}
	return converter.BookViewFromRow(row), nil
}

func (r *BookReadStore) List(ctx context.Context, after *string, limit int) ([]*queries.BookView, error) {
	params := pgsql.ListBooksParams{
		Limit: pgconv.IntToInt32(limit),
	}
	if after != nil {
		params.After = pgtype.Text{String: *after, Valid: true}
	}
	rows, err := r.queries.ListBooks(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	views := make([]*queries.BookView, 0, len(rows))
	for _, row := range rows {
		views = append(views, converter.BookViewFromRow(row))
	}
	return views, nil
}
