package docstore

import (
	"context"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/clock"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type CheckoutRepository struct {
	q     queryer
	clock clock.Clock
}

func NewCheckoutRepository(q queryer, clk clock.Clock) *CheckoutRepository {
	return &CheckoutRepository{q: q, clock: clk}
}

func (r *CheckoutRepository) Create(ctx context.Context, c *checkout.Checkout) error {
	return insertDoc(ctx, r.q, collCheckouts, c.ID().String(), newCheckoutDoc(c), r.clock.Now())
}

func (r *CheckoutRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkout.Checkout, error) {
	var doc checkoutDoc
	if _, err := getDoc(ctx, r.q, collCheckouts, id.String(), &doc); err != nil {
		return nil, err
	}
	return doc.toDomain(id), nil
}

func (r *CheckoutRepository) MarkReturned(ctx context.Context, id uuid.UUID, dateIn time.Time) error {
	n, err := updateWhere(ctx, r.q, collCheckouts, id.String(),
		goqu.Record{
			colBody:      goqu.L("json_set(body, '$.dateIn', ?)", dateIn.UnixMicro()),
			colUpdatedAt: r.clock.Now().UnixMicro(),
		},
		field(fieldDateIn).IsNull(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return infra.WrapRepoErr("checkout is no longer active", nil, infra.KindConflict)
	}
	return nil
}

func (r *CheckoutRepository) CountActiveByBook(ctx context.Context, isbn book.ISBN) (int, error) {
	query, args, err := builder().
		From(tableDocuments).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C(colCollection).Eq(collCheckouts),
			field(fieldBookID).Eq(isbn.String()),
			field(fieldDateIn).IsNull(),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build count query", err, infra.KindDBFailure)
	}
	var count int
	if err := r.q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, infra.WrapRepoErr("failed to count active checkouts", err)
	}
	return count, nil
}
