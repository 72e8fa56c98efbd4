package pgsql

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Books struct {
	Isbn            string
	Title           string
	Authors         []string
	Edition         pgtype.Text
	Synopsis        pgtype.Text
	Tags            []string
	TotalCopies     int32
	AvailableCopies int32
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type Checkouts struct {
	ID        uuid.UUID
	BookIsbn  string
	SubjectID string
	Quantity  int32
	DateOut   pgtype.Timestamptz
	DateIn    pgtype.Timestamptz
	Notes     pgtype.Text
}

type Users struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}
