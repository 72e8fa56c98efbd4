package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const checkoutColumns = `id, book_isbn, subject_id, quantity, date_out, date_in, notes`

func scanCheckout(row interface{ Scan(...any) error }) (Checkouts, error) {
	var i Checkouts
	err := row.Scan(
		&i.ID,
		&i.BookIsbn,
		&i.SubjectID,
		&i.Quantity,
		&i.DateOut,
		&i.DateIn,
		&i.Notes,
	)
	return i, err
}

const createCheckout = `-- name: CreateCheckout :exec
INSERT INTO checkouts (id, book_isbn, subject_id, quantity, date_out, notes)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateCheckoutParams struct {
	ID        uuid.UUID
	BookIsbn  string
	SubjectID string
	Quantity  int32
	DateOut   pgtype.Timestamptz
	Notes     pgtype.Text
}

func (q *Queries) CreateCheckout(ctx context.Context, db DBTX, arg CreateCheckoutParams) error {
	_, err := db.Exec(ctx, createCheckout,
		arg.ID,
		arg.BookIsbn,
		arg.SubjectID,
		arg.Quantity,
		arg.DateOut,
		arg.Notes,
	)
	return err
}

const getCheckout = `-- name: GetCheckout :one
SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1
`

func (q *Queries) GetCheckout(ctx context.Context, db DBTX, id uuid.UUID) (Checkouts, error) {
	return scanCheckout(db.QueryRow(ctx, getCheckout, id))
}

const getCheckoutForUpdate = `-- name: GetCheckoutForUpdate :one
SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetCheckoutForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Checkouts, error) {
	return scanCheckout(db.QueryRow(ctx, getCheckoutForUpdate, id))
}

const markCheckoutReturned = `-- name: MarkCheckoutReturned :execrows
UPDATE checkouts SET date_in = $2 WHERE id = $1 AND date_in IS NULL
`

type MarkCheckoutReturnedParams struct {
	ID     uuid.UUID
	DateIn pgtype.Timestamptz
}

func (q *Queries) MarkCheckoutReturned(ctx context.Context, db DBTX, arg MarkCheckoutReturnedParams) (int64, error) {
	tag, err := db.Exec(ctx, markCheckoutReturned, arg.ID, arg.DateIn)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countActiveCheckoutsByBook = `-- name: CountActiveCheckoutsByBook :one
SELECT count(*) FROM checkouts WHERE book_isbn = $1 AND date_in IS NULL
`

func (q *Queries) CountActiveCheckoutsByBook(ctx context.Context, db DBTX, bookIsbn string) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countActiveCheckoutsByBook, bookIsbn).Scan(&count)
	return count, err
}

const listCheckouts = `-- name: ListCheckouts :many
SELECT ` + checkoutColumns + ` FROM checkouts
WHERE ($1::text IS NULL OR subject_id = $1)
  AND ($2::text IS NULL OR book_isbn = $2)
  AND (NOT $3::boolean OR date_in IS NULL)
  AND ($4::timestamptz IS NULL OR (date_out, id) < ($4, $5::uuid))
ORDER BY date_out DESC, id DESC
LIMIT $6
`

type ListCheckoutsParams struct {
	SubjectID    pgtype.Text
	BookIsbn     pgtype.Text
	ActiveOnly   bool
	AfterDateOut pgtype.Timestamptz
	AfterID      pgtype.UUID
	Limit        int32
}

func (q *Queries) ListCheckouts(ctx context.Context, db DBTX, arg ListCheckoutsParams) ([]Checkouts, error) {
	rows, err := db.Query(ctx, listCheckouts,
		arg.SubjectID,
		arg.BookIsbn,
		arg.ActiveOnly,
		arg.AfterDateOut,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Checkouts{}
	for rows.Next() {
		i, err := scanCheckout(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
