package docstore

import (
	"context"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
)

type BookRepository struct {
	q     queryer
	clock clock.Clock
}

func NewBookRepository(q queryer, clk clock.Clock) *BookRepository {
	return &BookRepository{q: q, clock: clk}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	return insertDoc(ctx, r.q, collBooks, b.ISBN().String(), newBookDoc(b), r.clock.Now())
}

func (r *BookRepository) FindByID(ctx context.Context, isbn book.ISBN) (*book.Book, error) {
	b, _, err := r.load(ctx, isbn)
	return b, err
}

// FindByIDForUpdate is a plain read: transactions take the database write lock at BEGIN.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, isbn book.ISBN) (*book.Book, error) {
	return r.FindByID(ctx, isbn)
}

func (r *BookRepository) load(ctx context.Context, isbn book.ISBN) (*book.Book, int64, error) {
	var doc bookDoc
	rev, err := getDoc(ctx, r.q, collBooks, isbn.String(), &doc)
	if err != nil {
		return nil, 0, err
	}
	b, err := doc.toDomain(isbn.String())
	if err != nil {
		return nil, 0, infra.WrapRepoErr("corrupt book document", err, infra.KindDBFailure)
	}
	return b, rev, nil
}

// UpdateDetails swaps the metadata in with a revision check so the counts are never
// overwritten from a stale copy.
func (r *BookRepository) UpdateDetails(ctx context.Context, b *book.Book) error {
	current, rev, err := r.load(ctx, b.ISBN())
	if err != nil {
		return err
	}
	now := r.clock.Now()
	current.Describe(b.Metadata(), now)
	return compareAndSwap(ctx, r.q, collBooks, b.ISBN().String(), rev, newBookDoc(current), now)
}

func (r *BookRepository) Reserve(ctx context.Context, isbn book.ISBN, quantity int) (shared.InventoryCounts, error) {
	now := r.clock.Now()
	n, err := updateWhere(ctx, r.q, collBooks, isbn.String(),
		goqu.Record{
			colBody: goqu.L("json_set(body, '$.availableCopies', json_extract(body, '$.availableCopies') - ?, '$.updatedAt', ?)",
				quantity, now.UnixMicro()),
			colUpdatedAt: now.UnixMicro(),
		},
		field(fieldAvailableCopies).Gte(quantity),
	)
	if err != nil {
		return shared.InventoryCounts{}, err
	}
	if n == 0 {
		return shared.InventoryCounts{}, r.missingOr(ctx, isbn, infra.KindInsufficient, "not enough available copies")
	}
	return r.counts(ctx, isbn)
}

// Release reads the counts and writes them back through compareAndSwap, so the
// ceiling check and the increment apply to the same revision.
func (r *BookRepository) Release(ctx context.Context, isbn book.ISBN, quantity int) (shared.ReleaseResult, error) {
	b, rev, err := r.load(ctx, isbn)
	if err != nil {
		return shared.ReleaseResult{}, err
	}
	now := r.clock.Now()
	clamped, err := b.Release(quantity, now)
	if err != nil {
		return shared.ReleaseResult{}, infra.WrapRepoErr("invalid release", err, infra.KindConstraintViolated)
	}
	if err := compareAndSwap(ctx, r.q, collBooks, isbn.String(), rev, newBookDoc(b), now); err != nil {
		return shared.ReleaseResult{}, err
	}
	return shared.ReleaseResult{
		InventoryCounts: shared.InventoryCounts{Total: b.Inventory().Total(), Available: b.Inventory().Available()},
		Clamped:         clamped,
	}, nil
}

func (r *BookRepository) Resize(ctx context.Context, isbn book.ISBN, total int) (shared.InventoryCounts, error) {
	now := r.clock.Now()
	n, err := updateWhere(ctx, r.q, collBooks, isbn.String(),
		goqu.Record{
			colBody: goqu.L("json_set(body, '$.totalCopies', ?, "+
				"'$.availableCopies', json_extract(body, '$.availableCopies') + (? - json_extract(body, '$.totalCopies')), "+
				"'$.updatedAt', ?)",
				total, total, now.UnixMicro()),
			colUpdatedAt: now.UnixMicro(),
		},
		goqu.L("json_extract(body, '$.availableCopies') + (? - json_extract(body, '$.totalCopies')) >= 0", total),
	)
	if err != nil {
		return shared.InventoryCounts{}, err
	}
	if n == 0 {
		return shared.InventoryCounts{}, r.missingOr(ctx, isbn, infra.KindConstraintViolated, "total copies below checked out quantity")
	}
	return r.counts(ctx, isbn)
}

func (r *BookRepository) Delete(ctx context.Context, isbn book.ISBN) error {
	n, err := deleteDoc(ctx, r.q, collBooks, isbn.String())
	if err != nil {
		return err
	}
	if n == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) counts(ctx context.Context, isbn book.ISBN) (shared.InventoryCounts, error) {
	var doc bookDoc
	if _, err := getDoc(ctx, r.q, collBooks, isbn.String(), &doc); err != nil {
		return shared.InventoryCounts{}, err
	}
	return shared.InventoryCounts{Total: doc.TotalCopies, Available: doc.AvailableCopies}, nil
}

func (r *BookRepository) missingOr(ctx context.Context, isbn book.ISBN, kind infra.RepositoryErrorKind, msg string) error {
	exists, err := docExists(ctx, r.q, collBooks, isbn.String())
	if err != nil {
		return err
	}
	if !exists {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, nil, kind)
}
