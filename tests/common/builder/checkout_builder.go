//go:build unit || e2e

package builder

import (
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CheckoutBuilder struct {
	ID        uuid.UUID
	BookID    string
	SubjectID string
	Quantity  int
	Notes     *string
	DateOut   time.Time
	DateIn    *time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		ID:        uuid.New(),
		BookID:    "9780134190440",
		SubjectID: uuid.NewString(),
		Quantity:  1,
		DateOut:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (c *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CheckoutBuilder) BuildDomain() (*checkout.Checkout, error) {
	return checkout.New(book.ISBN(c.BookID), c.SubjectID, c.Quantity, c.Notes, c.DateOut)
}

// BuildStored reconstructs a checkout as a store would load it.
func (c *CheckoutBuilder) BuildStored() *checkout.Checkout {
	return checkout.Reconstruct(c.ID, book.ISBN(c.BookID), c.SubjectID, c.Quantity, c.DateOut, c.DateIn, c.Notes)
}

func (c *CheckoutBuilder) BuildRequest() commands.CheckoutRequest {
	return commands.CheckoutRequest{
		BookID:   c.BookID,
		Quantity: c.Quantity,
		Notes:    c.Notes,
	}
}

func (c *CheckoutBuilder) BuildDTO() reqdto.CreateCheckoutRequest {
	quantity := c.Quantity
	return reqdto.CreateCheckoutRequest{
		BookID:   c.BookID,
		Quantity: &quantity,
		Notes:    c.Notes,
	}
}

func (c *CheckoutBuilder) BuildInfra() pgsql.Checkouts {
	row := pgsql.Checkouts{
		ID:        c.ID,
		BookIsbn:  c.BookID,
		SubjectID: c.SubjectID,
		Quantity:  int32(c.Quantity),
		DateOut:   pgtype.Timestamptz{Time: c.DateOut, Valid: true},
	}
	if c.DateIn != nil {
		row.DateIn = pgtype.Timestamptz{Time: *c.DateIn, Valid: true}
	}
	if c.Notes != nil {
		row.Notes = pgtype.Text{String: *c.Notes, Valid: true}
	}
	return row
}

func (c *CheckoutBuilder) BuildView() *queries.CheckoutView {
	return &queries.CheckoutView{
		ID:        c.ID,
		BookID:    c.BookID,
		SubjectID: c.SubjectID,
		Quantity:  c.Quantity,
		DateOut:   c.DateOut,
		DateIn:    c.DateIn,
		Notes:     c.Notes,
	}
}

// Fluent builder methods
func (c *CheckoutBuilder) WithBookID(isbn string) *CheckoutBuilder {
	c.BookID = isbn
	return c
}

func (c *CheckoutBuilder) WithSubjectID(subjectID string) *CheckoutBuilder {
	c.SubjectID = subjectID
	return c
}

func (c *CheckoutBuilder) WithQuantity(quantity int) *CheckoutBuilder {
	c.Quantity = quantity
	return c
}

func (c *CheckoutBuilder) WithNotes(notes string) *CheckoutBuilder {
	c.Notes = &notes
	return c
}

func (c *CheckoutBuilder) WithDateOut(t time.Time) *CheckoutBuilder {
	c.DateOut = t
	return c
}

func (c *CheckoutBuilder) AsReturned(at time.Time) *CheckoutBuilder {
	c.DateIn = &at
	return c
}
