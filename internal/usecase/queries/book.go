package queries

import (
	"context"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/shared"
)

type BookReadStore interface {
	FindByID(ctx context.Context, isbn string) (*BookView, error)
	// List returns books ordered by isbn, strictly after the given isbn when set.
	List(ctx context.Context, after *string, limit int) ([]*BookView, error)
}

type BookQueries interface {
	GetByID(ctx context.Context, isbn string) (*BookView, error)
	List(ctx context.Context, cursor *Cursor, limit int) ([]*BookView, *Cursor, error)
}

type bookQueriesImpl struct {
	store BookReadStore
}

func NewBookQueries(store BookReadStore) BookQueries {
	return &bookQueriesImpl{store: store}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, isbn string) (*BookView, error) {
	id, err := book.NewISBN(isbn)
	if err != nil {
		return nil, err
	}
	view, err := q.store.FindByID(ctx, id.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookNotFound
		}
		return nil, shared.StoreError(err)
	}
	return view, nil
}

func (q *bookQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*BookView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var after *string
	if !cursor.isEmpty() {
		key, err := DecodeKeyCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Wrap(ErrInvalidCursor, err.Error())
		}
		after = &key
	}

	rows, err := q.store.List(ctx, after, limit+1)
	if err != nil {
		return nil, nil, shared.StoreError(err)
	}
	var next *Cursor
	if len(rows) > limit {
		next = &Cursor{After: EncodeKeyCursor(rows[limit-1].ISBN)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
