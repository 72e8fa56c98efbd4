package queries

import (
	"context"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CheckoutView, error)
	// List returns rows ordered by dateOut DESC, id DESC, strictly after the keyset when given.
	List(ctx context.Context, filter ListCheckoutsFilter, after *CheckoutKeyset, limit int) ([]*CheckoutView, error)
}

type CheckoutQueries interface {
	GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*CheckoutView, error)
	List(ctx context.Context, identity user.Identity, filter ListCheckoutsFilter, cursor *Cursor, limit int) ([]*CheckoutView, *Cursor, error)
}

type checkoutQueriesImpl struct {
	store CheckoutReadStore
}

func NewCheckoutQueries(store CheckoutReadStore) CheckoutQueries {
	return &checkoutQueriesImpl{store: store}
}

func (q *checkoutQueriesImpl) GetByID(ctx context.Context, identity user.Identity, id uuid.UUID) (*CheckoutView, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCheckoutNotFound
		}
		return nil, shared.StoreError(err)
	}
	if !identity.Role.SeesAllCheckouts() && !identity.Owns(view.SubjectID) {
		return nil, errs.ErrNotCheckoutOwner
	}
	return view, nil
}

// List narrows Standard callers to their own checkouts regardless of the filter.
func (q *checkoutQueriesImpl) List(ctx context.Context, identity user.Identity, filter ListCheckoutsFilter, cursor *Cursor, limit int) ([]*CheckoutView, *Cursor, error) {
	if err := identity.Validate(); err != nil {
		return nil, nil, err
	}
	if !identity.Role.SeesAllCheckouts() {
		self := identity.SubjectID
		filter.SubjectID = &self
	}

	limit = ValidateLimit(limit)
	var after *CheckoutKeyset
	if !cursor.isEmpty() {
		dateOut, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Wrap(ErrInvalidCursor, err.Error())
		}
		after = &CheckoutKeyset{DateOut: dateOut, ID: id}
	}

	rows, err := q.store.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, shared.StoreError(err)
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.DateOut, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
