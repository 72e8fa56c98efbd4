package readstore

import (
	"context"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Users, error)
	FindUserByEmail(ctx context.Context, db pgsql.DBTX, email string) (pgsql.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      pgsql.DBTX
}

func NewUserReadStore(queries UserReadQueries, db pgsql.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return converter.UserViewFromRow(row), nil
}

// FindByEmail also returns the password hash for credential checks.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return converter.UserViewFromRow(row), row.PasswordHash, nil
}
