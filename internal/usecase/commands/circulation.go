package commands

import (
	"context"
	"log/slog"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	BookID   string
	Quantity int
	Notes    *string
}

// CirculationCommands moves copies between the catalog and the ledger. Each call
// is one atomic transition: the ledger entry and the count change commit together
// or not at all.
type CirculationCommands interface {
	Checkout(ctx context.Context, identity user.Identity, req CheckoutRequest) (*queries.CheckoutView, error)
	Return(ctx context.Context, identity user.Identity, checkoutID uuid.UUID) (*queries.CheckoutView, error)
}

type circulationCommandsImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher shared.ChangePublisher
}

func NewCirculationCommands(uow shared.UnitOfWork, clk clock.Clock, publisher shared.ChangePublisher) CirculationCommands {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &circulationCommandsImpl{
		uow:       uow,
		clock:     clk,
		publisher: publisher,
	}
}

func (uc *circulationCommandsImpl) Checkout(ctx context.Context, identity user.Identity, req CheckoutRequest) (*queries.CheckoutView, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	isbn, err := book.NewISBN(req.BookID)
	if err != nil {
		return nil, err
	}
	co, err := checkout.New(isbn, identity.SubjectID, req.Quantity, req.Notes, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var counts shared.InventoryCounts
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Books().Reserve(ctx, isbn, co.Quantity())
		if err != nil {
			return err
		}
		counts = c
		return tx.Checkouts().Create(ctx, co)
	})
	if err != nil {
		return nil, translateCirculationErr(err)
	}

	slog.Info("checkout created",
		slog.String("checkout_id", co.ID().String()),
		slog.String("book_id", isbn.String()),
		slog.String("subject_id", co.SubjectID()),
		slog.Int("quantity", co.Quantity()),
		slog.Int("available", counts.Available))

	uc.publisher.Publish(checkoutEvent(shared.ChangeCheckoutCreated, co, counts, uc.clock.Now()))
	return toCheckoutView(co), nil
}

// Return authorizes before looking at the returned state so a non-owner learns
// nothing about someone else's checkout.
func (uc *circulationCommandsImpl) Return(ctx context.Context, identity user.Identity, checkoutID uuid.UUID) (*queries.CheckoutView, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	var (
		returned *checkout.Checkout
		release  shared.ReleaseResult
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		co, err := tx.Checkouts().FindByIDForUpdate(ctx, checkoutID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCheckoutNotFound
			}
			return err
		}
		if !co.CanBeReturnedBy(identity) {
			return errs.ErrNotCheckoutOwner
		}
		if err := co.MarkReturned(uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Checkouts().MarkReturned(ctx, co.ID(), *co.DateIn()); err != nil {
			return err
		}
		rel, err := tx.Books().Release(ctx, co.BookID(), co.Quantity())
		if err != nil {
			return err
		}
		returned, release = co, rel
		return nil
	})
	if err != nil {
		return nil, translateCirculationErr(err)
	}

	now := uc.clock.Now()
	if release.Clamped {
		slog.Error("inventory ceiling reached on return, counts were inconsistent with the ledger",
			slog.String("checkout_id", returned.ID().String()),
			slog.String("book_id", returned.BookID().String()),
			slog.Int("quantity", returned.Quantity()),
			slog.Int("available", release.Available),
			slog.Int("total", release.Total))
		uc.publisher.Publish(checkoutEvent(shared.ChangeInventoryAnomaly, returned, release.InventoryCounts, now))
	}

	slog.Info("checkout returned",
		slog.String("checkout_id", returned.ID().String()),
		slog.String("book_id", returned.BookID().String()),
		slog.Int("available", release.Available))

	uc.publisher.Publish(checkoutEvent(shared.ChangeCheckoutReturned, returned, release.InventoryCounts, now))
	return toCheckoutView(returned), nil
}

func translateCirculationErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrBookNotFound
	case infra.IsKind(err, infra.KindInsufficient):
		return book.ErrInsufficientStock
	default:
		return shared.StoreError(err)
	}
}

func checkoutEvent(kind shared.ChangeKind, co *checkout.Checkout, counts shared.InventoryCounts, now time.Time) shared.ChangeEvent {
	id := co.ID()
	return shared.ChangeEvent{
		Kind:       kind,
		BookID:     co.BookID().String(),
		CheckoutID: &id,
		SubjectID:  co.SubjectID(),
		Quantity:   co.Quantity(),
		Available:  counts.Available,
		Total:      counts.Total,
		OccurredAt: now,
	}
}

func toCheckoutView(co *checkout.Checkout) *queries.CheckoutView {
	return &queries.CheckoutView{
		ID:        co.ID(),
		BookID:    co.BookID().String(),
		SubjectID: co.SubjectID(),
		Quantity:  co.Quantity(),
		DateOut:   co.DateOut(),
		DateIn:    co.DateIn(),
		Notes:     co.Notes(),
	}
}
