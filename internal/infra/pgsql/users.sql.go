package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, name, password_hash, role, is_active, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (Users, error) {
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createUser = `-- name: CreateUser :exec
INSERT INTO users (id, email, name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) error {
	_, err := db.Exec(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.Name,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
	)
	return err
}

const findUserByID = `-- name: FindUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = $1
`

func (q *Queries) FindUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	return scanUser(db.QueryRow(ctx, findUserByID, id))
}

const findUserByEmail = `-- name: FindUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE email = $1
`

func (q *Queries) FindUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	return scanUser(db.QueryRow(ctx, findUserByEmail, email))
}

const updateUserLastLogin = `-- name: UpdateUserLastLogin :exec
UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1
`

type UpdateUserLastLoginParams struct {
	ID        uuid.UUID
	LastLogin pgtype.Timestamptz
}

func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, arg UpdateUserLastLoginParams) error {
	_, err := db.Exec(ctx, updateUserLastLogin, arg.ID, arg.LastLogin)
	return err
}
