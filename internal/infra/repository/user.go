package repository

import (
	"context"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateUserParams) error
	UpdateUserLastLogin(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateUserLastLoginParams) error
}

type UserRepository struct {
	queries UserWriteQueries
	db      pgsql.DBTX
}

func NewUserRepository(queries UserWriteQueries, db pgsql.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := r.queries.CreateUser(ctx, r.db, converter.UserToCreateParams(u)); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	err := r.queries.UpdateUserLastLogin(ctx, r.db, pgsql.UpdateUserLastLoginParams{
		ID:        userID,
		LastLogin: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
