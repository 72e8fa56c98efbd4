//go:build unit || e2e

package builder

import (
	"time"

	"library-circulation/internal/domain/book"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type BookBuilder struct {
	ISBN      string
	Title     string
	Authors   []string
	Edition   *string
	Synopsis  *string
	Tags      []string
	Total     int
	Available int
	CreatedAt time.Time
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		ISBN:      "9780134190440",
		Title:     "The Go Programming Language",
		Authors:   []string{"Alan Donovan", "Brian Kernighan"},
		Tags:      []string{"go", "programming"},
		Total:     5,
		Available: 5,
		CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookBuilder) BuildDomain() (*book.Book, error) {
	isbn, err := book.NewISBN(b.ISBN)
	if err != nil {
		return nil, err
	}
	md, err := book.NewMetadata(b.Title, b.Authors, b.Edition, b.Synopsis, b.Tags)
	if err != nil {
		return nil, err
	}
	inv, err := book.NewInventory(b.Total, b.Available)
	if err != nil {
		return nil, err
	}
	return book.NewBook(isbn, md, inv, b.CreatedAt), nil
}

func (b *BookBuilder) BuildCreateRequest() commands.CreateBookRequest {
	return commands.CreateBookRequest{
		ISBN:        b.ISBN,
		Title:       b.Title,
		Authors:     b.Authors,
		Edition:     b.Edition,
		Synopsis:    b.Synopsis,
		Tags:        b.Tags,
		TotalCopies: b.Total,
	}
}

func (b *BookBuilder) BuildDTO() reqdto.CreateBookRequest {
	return reqdto.CreateBookRequest{
		ISBN:        b.ISBN,
		Title:       b.Title,
		Authors:     b.Authors,
		Edition:     b.Edition,
		Synopsis:    b.Synopsis,
		Tags:        b.Tags,
		TotalCopies: b.Total,
	}
}

func (b *BookBuilder) BuildInfra() pgsql.Books {
	ts := pgtype.Timestamptz{Time: b.CreatedAt, Valid: true}
	return pgsql.Books{
		Isbn:            b.ISBN,
		Title:           b.Title,
		Authors:         b.Authors,
		Tags:            b.Tags,
		TotalCopies:     int32(b.Total),
		AvailableCopies: int32(b.Available),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
}

func (b *BookBuilder) BuildView() *queries.BookView {
	return &queries.BookView{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Authors:         b.Authors,
		Edition:         b.Edition,
		Synopsis:        b.Synopsis,
		Tags:            b.Tags,
		TotalCopies:     b.Total,
		AvailableCopies: b.Available,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.ISBN = isbn
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithAuthors(authors ...string) *BookBuilder {
	b.Authors = authors
	return b
}

func (b *BookBuilder) WithTags(tags ...string) *BookBuilder {
	b.Tags = tags
	return b
}

// WithCopies sets a fully available inventory.
func (b *BookBuilder) WithCopies(total int) *BookBuilder {
	b.Total = total
	b.Available = total
	return b
}

func (b *BookBuilder) WithInventory(total, available int) *BookBuilder {
	b.Total = total
	b.Available = available
	return b
}
