package converter

import (
	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/queries"
)

func BookToCreateParams(b *book.Book) pgsql.CreateBookParams {
	md := b.Metadata()
	return pgsql.CreateBookParams{
		Isbn:            b.ISBN().String(),
		Title:           md.Title,
		Authors:         nonNil(md.Authors),
		Edition:         pgconv.StringPtrToPgtype(md.Edition),
		Synopsis:        pgconv.StringPtrToPgtype(md.Synopsis),
		Tags:            nonNil(md.Tags),
		TotalCopies:     pgconv.IntToInt32(b.Inventory().Total()),
		AvailableCopies: pgconv.IntToInt32(b.Inventory().Available()),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BookToUpdateDetailsParams(b *book.Book) pgsql.UpdateBookDetailsParams {
	md := b.Metadata()
	return pgsql.UpdateBookDetailsParams{
		Isbn:      b.ISBN().String(),
		Title:     md.Title,
		Authors:   nonNil(md.Authors),
		Edition:   pgconv.StringPtrToPgtype(md.Edition),
		Synopsis:  pgconv.StringPtrToPgtype(md.Synopsis),
		Tags:      nonNil(md.Tags),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookFromRow(row pgsql.Books) (*book.Book, error) {
	inv, err := book.NewInventory(int(row.TotalCopies), int(row.AvailableCopies))
	if err != nil {
		return nil, errs.Wrapf(err, "stored counts for book %s", row.Isbn)
	}
	md := book.Metadata{
		Title:    row.Title,
		Authors:  row.Authors,
		Edition:  pgconv.StringPtrFromPgtype(row.Edition),
		Synopsis: pgconv.StringPtrFromPgtype(row.Synopsis),
		Tags:     row.Tags,
	}
	return book.ReconstructBook(
		book.ISBN(row.Isbn),
		md,
		inv,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BookViewFromRow(row pgsql.Books) *queries.BookView {
	return &queries.BookView{
		ISBN:            row.Isbn,
		Title:           row.Title,
		Authors:         nonNil(row.Authors),
		Edition:         pgconv.StringPtrFromPgtype(row.Edition),
		Synopsis:        pgconv.StringPtrFromPgtype(row.Synopsis),
		Tags:            nonNil(row.Tags),
		TotalCopies:     int(row.TotalCopies),
		AvailableCopies: int(row.AvailableCopies),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
