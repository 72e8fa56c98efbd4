package docstore

import (
	"context"

	"library-circulation/internal/infra"
	"library-circulation/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BookReadStore struct {
	db *sqlx.DB
}

func NewBookReadStore(db *sqlx.DB) *BookReadStore {
	return &BookReadStore{db: db}
}

func (r *BookReadStore) FindByID(ctx context.Context, isbn string) (*queries.BookView, error) {
	var doc bookDoc
	if _, err := getDoc(ctx, r.db, collBooks, isbn, &doc); err != nil {
		return nil, err
	}
	return doc.toView(isbn), nil
}

func (r *BookReadStore) List(ctx context.Context, after *string, limit int) ([]*queries.BookView, error) {
	ds := selectDocs(collBooks).Order(goqu.C(colID).Asc()).Limit(uint(limit))
	if after != nil {
		ds = ds.Where(goqu.C(colID).Gt(*after))
	}
	docs, ids, err := selectAll[bookDoc](ctx, r.db, ds)
	if err != nil {
		return nil, err
	}
	views := make([]*queries.BookView, 0, len(docs))
	for i, doc := range docs {
		views = append(views, doc.toView(ids[i]))
	}
	return views, nil
}

type CheckoutReadStore struct {
	db *sqlx.DB
}

func NewCheckoutReadStore(db *sqlx.DB) *CheckoutReadStore {
	return &CheckoutReadStore{db: db}
}

func (r *CheckoutReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CheckoutView, error) {
	var doc checkoutDoc
	if _, err := getDoc(ctx, r.db, collCheckouts, id.String(), &doc); err != nil {
		return nil, err
	}
	return doc.toView(id), nil
}

func (r *CheckoutReadStore) List(ctx context.Context, filter queries.ListCheckoutsFilter, after *queries.CheckoutKeyset, limit int) ([]*queries.CheckoutView, error) {
	ds := selectDocs(collCheckouts)
	if filter.SubjectID != nil {
		ds = ds.Where(field(fieldSubjectID).Eq(*filter.SubjectID))
	}
	if filter.BookID != nil {
		ds = ds.Where(field(fieldBookID).Eq(*filter.BookID))
	}
	if filter.ActiveOnly {
		ds = ds.Where(field(fieldDateIn).IsNull())
	}
	if after != nil {
		micros := after.DateOut.UnixMicro()
		ds = ds.Where(goqu.Or(
			field(fieldDateOut).Lt(micros),
			goqu.And(field(fieldDateOut).Eq(micros), goqu.C(colID).Lt(after.ID.String())),
		))
	}
	ds = ds.Order(field(fieldDateOut).Desc(), goqu.C(colID).Desc()).Limit(uint(limit))

	docs, ids, err := selectAll[checkoutDoc](ctx, r.db, ds)
	if err != nil {
		return nil, err
	}
	views := make([]*queries.CheckoutView, 0, len(docs))
	for i, doc := range docs {
		id, err := uuid.Parse(ids[i])
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt checkout id "+ids[i], err, infra.KindDBFailure)
		}
		views = append(views, doc.toView(id))
	}
	return views, nil
}

type UserReadStore struct {
	db *sqlx.DB
}

func NewUserReadStore(db *sqlx.DB) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var doc userDoc
	if _, err := getDoc(ctx, r.db, collUsers, id.String(), &doc); err != nil {
		return nil, err
	}
	return doc.toView(id), nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	ds := selectDocs(collUsers).Where(field(fieldEmail).Eq(email)).Limit(1)
	docs, ids, err := selectAll[userDoc](ctx, r.db, ds)
	if err != nil {
		return nil, "", err
	}
	if len(docs) == 0 {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	id, err := uuid.Parse(ids[0])
	if err != nil {
		return nil, "", infra.WrapRepoErr("corrupt user id "+ids[0], err, infra.KindDBFailure)
	}
	return docs[0].toView(id), docs[0].PasswordHash, nil
}

func selectAll[T any](ctx context.Context, q queryer, ds *goqu.SelectDataset) ([]T, []string, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to build select", err, infra.KindDBFailure)
	}
	var rows []documentRow
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to query documents", err)
	}
	return decodeRows[T](rows)
}
