package repository

import (
	"context"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/repository/converter"
	"library-circulation/internal/pkg/pgconv"
	"library-circulation/internal/usecase/shared"
)

type BookWriteQueries interface {
	CreateBook(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateBookParams) error
	GetBook(ctx context.Context, db pgsql.DBTX, isbn string) (pgsql.Books, error)
	GetBookForUpdate(ctx context.Context, db pgsql.DBTX, isbn string) (pgsql.Books, error)
	BookExists(ctx context.Context, db pgsql.DBTX, isbn string) (bool, error)
	UpdateBookDetails(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateBookDetailsParams) (int64, error)
	ReserveCopies(ctx context.Context, db pgsql.DBTX, arg pgsql.ReserveCopiesParams) (pgsql.InventoryRow, error)
	ReleaseCopies(ctx context.Context, db pgsql.DBTX, arg pgsql.ReleaseCopiesParams) (pgsql.ReleaseCopiesRow, error)
	ResizeBook(ctx context.Context, db pgsql.DBTX, arg pgsql.ResizeBookParams) (pgsql.InventoryRow, error)
	DeleteBook(ctx context.Context, db pgsql.DBTX, isbn string) (int64, error)
}

type BookRepository struct {
	queries BookWriteQueries
	db      pgsql.DBTX
}

func NewBookRepository(queries BookWriteQueries, db pgsql.DBTX) *BookRepository {
	return &BookRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.queries.CreateBook(ctx, r.db, converter.BookToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create book", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, isbn book.ISBN) (*book.Book, error) {
	row, err := r.queries.GetBook(ctx, r.db, isbn.String())
	return r.toDomain(row, err)
}

// FindByIDForUpdate holds the row lock until the transaction ends.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, isbn book.ISBN) (*book.Book, error) {
	row, err := r.queries.GetBookForUpdate(ctx, r.db, isbn.String())
	return r.toDomain(row, err)
}

func (r *BookRepository) toDomain(row pgsql.Books, err error) (*book.Book, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	b, err := converter.BookFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt book row", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookRepository) UpdateDetails(ctx context.Context, b *book.Book) error {
	n, err := r.queries.UpdateBookDetails(ctx, r.db, converter.BookToUpdateDetailsParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) Reserve(ctx context.Context, isbn book.ISBN, quantity int) (shared.InventoryCounts, error) {
	row, err := r.queries.ReserveCopies(ctx, r.db, pgsql.ReserveCopiesParams{
		Isbn:     isbn.String(),
		Quantity: pgconv.IntToInt32(quantity),
	})
	if err == nil {
		return countsFromRow(row), nil
	}
	if !pgconv.IsNoRows(err) {
		return shared.InventoryCounts{}, infra.WrapRepoErr("failed to reserve copies", err)
	}
	return shared.InventoryCounts{}, r.missingOr(ctx, isbn, infra.KindInsufficient, "not enough available copies")
}

func (r *BookRepository) Release(ctx context.Context, isbn book.ISBN, quantity int) (shared.ReleaseResult, error) {
	row, err := r.queries.ReleaseCopies(ctx, r.db, pgsql.ReleaseCopiesParams{
		Isbn:     isbn.String(),
		Quantity: pgconv.IntToInt32(quantity),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return shared.ReleaseResult{}, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return shared.ReleaseResult{}, infra.WrapRepoErr("failed to release copies", err)
	}
	return shared.ReleaseResult{
		InventoryCounts: shared.InventoryCounts{Total: int(row.TotalCopies), Available: int(row.AvailableCopies)},
		Clamped:         row.Clamped,
	}, nil
}

func (r *BookRepository) Resize(ctx context.Context, isbn book.ISBN, total int) (shared.InventoryCounts, error) {
	row, err := r.queries.ResizeBook(ctx, r.db, pgsql.ResizeBookParams{
		Isbn:        isbn.String(),
		TotalCopies: pgconv.IntToInt32(total),
	})
	if err == nil {
		return countsFromRow(row), nil
	}
	if !pgconv.IsNoRows(err) {
		return shared.InventoryCounts{}, infra.WrapRepoErr("failed to resize book", err)
	}
	return shared.InventoryCounts{}, r.missingOr(ctx, isbn, infra.KindConstraintViolated, "total copies below checked out quantity")
}

func (r *BookRepository) Delete(ctx context.Context, isbn book.ISBN) error {
	n, err := r.queries.DeleteBook(ctx, r.db, isbn.String())
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

// missingOr tells a conditional update that matched nothing because the row is
// absent from one that failed its guard.
func (r *BookRepository) missingOr(ctx context.Context, isbn book.ISBN, kind infra.RepositoryErrorKind, msg string) error {
	exists, err := r.queries.BookExists(ctx, r.db, isbn.String())
	if err != nil {
		return infra.WrapRepoErr("failed to check book existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, nil, kind)
}

func countsFromRow(row pgsql.InventoryRow) shared.InventoryCounts {
	return shared.InventoryCounts{Total: int(row.TotalCopies), Available: int(row.AvailableCopies)}
}
