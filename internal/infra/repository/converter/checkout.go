package converter

import (
	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"
)

func CheckoutToCreateParams(c *checkout.Checkout) pgsql.CreateCheckoutParams {
	return pgsql.CreateCheckoutParams{
		ID:        c.ID(),
		BookIsbn:  c.BookID().String(),
		SubjectID: c.SubjectID(),
		Quantity:  pgconv.IntToInt32(c.Quantity()),
		DateOut:   pgconv.TimeToPgtype(c.DateOut()),
		Notes:     pgconv.StringPtrToPgtype(c.Notes()),
	}
}

func CheckoutFromRow(row pgsql.Checkouts) *checkout.Checkout {
	return checkout.Reconstruct(
		row.ID,
		book.ISBN(row.BookIsbn),
		row.SubjectID,
		int(row.Quantity),
		pgconv.TimeFromPgtype(row.DateOut),
		pgconv.TimePtrFromPgtype(row.DateIn),
		pgconv.StringPtrFromPgtype(row.Notes),
	)
}

func CheckoutViewFromRow(row pgsql.Checkouts) *queries.CheckoutView {
	return &queries.CheckoutView{
		ID:        row.ID,
		BookID:    row.BookIsbn,
		SubjectID: row.SubjectID,
		Quantity:  int(row.Quantity),
		DateOut:   pgconv.TimeFromPgtype(row.DateOut),
		DateIn:    pgconv.TimePtrFromPgtype(row.DateIn),
		Notes:     pgconv.StringPtrFromPgtype(row.Notes),
	}
}
