package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const bookColumns = `isbn, title, authors, edition, synopsis, tags, total_copies, available_copies, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }) (Books, error) {
	var i Books
	err := row.Scan(
		&i.Isbn,
		&i.Title,
		&i.Authors,
		&i.Edition,
		&i.Synopsis,
		&i.Tags,
		&i.TotalCopies,
		&i.AvailableCopies,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createBook = `-- name: CreateBook :exec
INSERT INTO books (isbn, title, authors, edition, synopsis, tags, total_copies, available_copies, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
`

type CreateBookParams struct {
	Isbn            string
	Title           string
	Authors         []string
	Edition         pgtype.Text
	Synopsis        pgtype.Text
	Tags            []string
	TotalCopies     int32
	AvailableCopies int32
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateBook(ctx context.Context, db DBTX, arg CreateBookParams) error {
	_, err := db.Exec(ctx, createBook,
		arg.Isbn,
		arg.Title,
		arg.Authors,
		arg.Edition,
		arg.Synopsis,
		arg.Tags,
		arg.TotalCopies,
		arg.AvailableCopies,
		arg.CreatedAt,
	)
	return err
}

const getBook = `-- name: GetBook :one
SELECT ` + bookColumns + ` FROM books WHERE isbn = $1
`

func (q *Queries) GetBook(ctx context.Context, db DBTX, isbn string) (Books, error) {
	return scanBook(db.QueryRow(ctx, getBook, isbn))
}

const getBookForUpdate = `-- name: GetBookForUpdate :one
SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 FOR UPDATE
`

func (q *Queries) GetBookForUpdate(ctx context.Context, db DBTX, isbn string) (Books, error) {
	return scanBook(db.QueryRow(ctx, getBookForUpdate, isbn))
}

const bookExists = `-- name: BookExists :one
SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)
`

func (q *Queries) BookExists(ctx context.Context, db DBTX, isbn string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, bookExists, isbn).Scan(&exists)
	return exists, err
}

const updateBookDetails = `-- name: UpdateBookDetails :execrows
UPDATE books
SET title = $2, authors = $3, edition = $4, synopsis = $5, tags = $6, updated_at = $7
WHERE isbn = $1
`

type UpdateBookDetailsParams struct {
	Isbn      string
	Title     string
	Authors   []string
	Edition   pgtype.Text
	Synopsis  pgtype.Text
	Tags      []string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateBookDetails(ctx context.Context, db DBTX, arg UpdateBookDetailsParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookDetails,
		arg.Isbn,
		arg.Title,
		arg.Authors,
		arg.Edition,
		arg.Synopsis,
		arg.Tags,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InventoryRow struct {
	TotalCopies     int32
	AvailableCopies int32
}

const reserveCopies = `-- name: ReserveCopies :one
UPDATE books
SET available_copies = available_copies - $2, updated_at = now()
WHERE isbn = $1 AND available_copies >= $2
RETURNING total_copies, available_copies
`

type ReserveCopiesParams struct {
	Isbn     string
	Quantity int32
}

// ReserveCopies decrements only when enough copies are available. No row means
// the book is missing or short.
func (q *Queries) ReserveCopies(ctx context.Context, db DBTX, arg ReserveCopiesParams) (InventoryRow, error) {
	var i InventoryRow
	err := db.QueryRow(ctx, reserveCopies, arg.Isbn, arg.Quantity).Scan(&i.TotalCopies, &i.AvailableCopies)
	return i, err
}

const releaseCopies = `-- name: ReleaseCopies :one
WITH prev AS (
    SELECT isbn, available_copies FROM books WHERE isbn = $1 FOR UPDATE
)
UPDATE books b
SET available_copies = LEAST(b.total_copies, prev.available_copies + $2), updated_at = now()
FROM prev
WHERE b.isbn = prev.isbn
RETURNING b.total_copies, b.available_copies, (prev.available_copies + $2 > b.total_copies) AS clamped
`

type ReleaseCopiesParams struct {
	Isbn     string
	Quantity int32
}

type ReleaseCopiesRow struct {
	TotalCopies     int32
	AvailableCopies int32
	Clamped         bool
}

func (q *Queries) ReleaseCopies(ctx context.Context, db DBTX, arg ReleaseCopiesParams) (ReleaseCopiesRow, error) {
	var i ReleaseCopiesRow
	err := db.QueryRow(ctx, releaseCopies, arg.Isbn, arg.Quantity).Scan(&i.TotalCopies, &i.AvailableCopies, &i.Clamped)
	return i, err
}

const resizeBook = `-- name: ResizeBook :one
UPDATE books
SET total_copies = $2, available_copies = available_copies + ($2 - total_copies), updated_at = now()
WHERE isbn = $1 AND available_copies + ($2 - total_copies) >= 0
RETURNING total_copies, available_copies
`

type ResizeBookParams struct {
	Isbn        string
	TotalCopies int32
}

func (q *Queries) ResizeBook(ctx context.Context, db DBTX, arg ResizeBookParams) (InventoryRow, error) {
	var i InventoryRow
	err := db.QueryRow(ctx, resizeBook, arg.Isbn, arg.TotalCopies).Scan(&i.TotalCopies, &i.AvailableCopies)
	return i, err
}

const deleteBook = `-- name: DeleteBook :execrows
DELETE FROM books WHERE isbn = $1
`

func (q *Queries) DeleteBook(ctx context.Context, db DBTX, isbn string) (int64, error) {
	tag, err := db.Exec(ctx, deleteBook, isbn)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listBooks = `-- name: ListBooks :many
SELECT ` + bookColumns + ` FROM books
WHERE ($1::text IS NULL OR isbn > $1)
ORDER BY isbn
LIMIT $2
`

type ListBooksParams struct {
	After pgtype.Text
	Limit int32
}

func (q *Queries) ListBooks(ctx context.Context, db DBTX, arg ListBooksParams) ([]Books, error) {
	rows, err := db.Query(ctx, listBooks, arg.After, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Books{}
	for rows.Next() {
		i, err := scanBook(rows)
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
