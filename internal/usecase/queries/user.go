package queries

import (
	"context"
	"errors"

	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.Mark(errors.New("user not found"), errs.ErrNotFound)
	ErrUserInactive = errs.Mark(errors.New("user inactive"), errs.ErrForbidden)
)

// UserQueries backs GET /api/auth/me. A token can outlive the account it was
// issued for, so the account is looked up again on every call.
type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByEmail also returns the password hash for credential checks.
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindByID(ctx, userID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, shared.StoreError(err)
	case !view.IsActive:
		return nil, ErrUserInactive
	}
	return view, nil
}
