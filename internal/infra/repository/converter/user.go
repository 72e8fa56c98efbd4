package converter

import (
	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"
)

func UserToCreateParams(u *user.User) pgsql.CreateUserParams {
	return pgsql.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Name:         u.Name().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func UserViewFromRow(row pgsql.Users) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      row.Role,
		IsActive:  row.IsActive,
		LastLogin: pgconv.TimePtrFromPgtype(row.LastLogin),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
