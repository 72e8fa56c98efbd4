package commands

import (
	"context"
	"log/slog"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/pkg/patch"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"
)

type CreateBookRequest struct {
	ISBN        string
	Title       string
	Authors     []string
	Edition     *string
	Synopsis    *string
	Tags        []string
	TotalCopies int
	// AvailableCopies is optional. When present it must equal TotalCopies: a new
	// title has nothing checked out.
	AvailableCopies *int
}

// UpdateBookRequest is a partial update. Nil fields keep their stored value.
type UpdateBookRequest struct {
	Title       *string
	Authors     *[]string
	Edition     *string
	Synopsis    *string
	Tags        *[]string
	TotalCopies *int
}

// CatalogCommands manage titles. All of them require a librarian.
type CatalogCommands interface {
	CreateBook(ctx context.Context, identity user.Identity, req CreateBookRequest) (*queries.BookView, error)
	UpdateBook(ctx context.Context, identity user.Identity, isbn string, req UpdateBookRequest) (*queries.BookView, error)
	DeleteBook(ctx context.Context, identity user.Identity, isbn string) error
}

type catalogCommandsImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher shared.ChangePublisher
}

func NewCatalogCommands(uow shared.UnitOfWork, clk clock.Clock, publisher shared.ChangePublisher) CatalogCommands {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &catalogCommandsImpl{
		uow:       uow,
		clock:     clk,
		publisher: publisher,
	}
}

func requireLibrarian(identity user.Identity) error {
	if err := identity.Validate(); err != nil {
		return err
	}
	if !identity.Role.IsPrivileged() {
		return errs.ErrPrivilegedRoleRequired
	}
	return nil
}

func (uc *catalogCommandsImpl) CreateBook(ctx context.Context, identity user.Identity, req CreateBookRequest) (*queries.BookView, error) {
	if err := requireLibrarian(identity); err != nil {
		return nil, err
	}
	isbn, err := book.NewISBN(req.ISBN)
	if err != nil {
		return nil, err
	}
	md, err := book.NewMetadata(req.Title, req.Authors, req.Edition, req.Synopsis, req.Tags)
	if err != nil {
		return nil, err
	}
	if req.AvailableCopies != nil && *req.AvailableCopies != req.TotalCopies {
		return nil, book.ErrInvalidCopies
	}
	inv, err := book.FullInventory(req.TotalCopies)
	if err != nil {
		return nil, err
	}

	b := book.NewBook(isbn, md, inv, uc.clock.Now())
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Create(ctx, b)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrDuplicateISBN
		}
		return nil, shared.StoreError(err)
	}

	slog.Info("book created",
		slog.String("book_id", isbn.String()),
		slog.Int("total", inv.Total()))

	uc.publisher.Publish(bookEvent(shared.ChangeBookCreated, b, uc.clock.Now()))
	return toBookView(b), nil
}

// UpdateBook never writes Available directly. A new total goes through Resize,
// which shifts Available by the same delta and refuses to drop it below zero.
func (uc *catalogCommandsImpl) UpdateBook(ctx context.Context, identity user.Identity, isbnStr string, req UpdateBookRequest) (*queries.BookView, error) {
	if err := requireLibrarian(identity); err != nil {
		return nil, err
	}
	isbn, err := book.NewISBN(isbnStr)
	if err != nil {
		return nil, err
	}
	if req.TotalCopies != nil && *req.TotalCopies < 0 {
		return nil, book.ErrInvalidCopies
	}

	var updated *book.Book
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Books().FindByIDForUpdate(ctx, isbn)
		if err != nil {
			return err
		}

		if req.hasDetails() {
			md := current.Metadata()
			next, err := book.NewMetadata(
				patch.Coalesce(req.Title, md.Title),
				patch.CoalesceSlice(req.Authors, md.Authors),
				patch.CoalesceOptional(req.Edition, md.Edition),
				patch.CoalesceOptional(req.Synopsis, md.Synopsis),
				patch.CoalesceSlice(req.Tags, md.Tags),
			)
			if err != nil {
				return err
			}
			current.Describe(next, uc.clock.Now())
			if err := tx.Books().UpdateDetails(ctx, current); err != nil {
				return err
			}
		}

		if req.TotalCopies != nil && *req.TotalCopies != current.Inventory().Total() {
			if _, err := tx.Books().Resize(ctx, isbn, *req.TotalCopies); err != nil {
				return err
			}
		}

		updated, err = tx.Books().FindByID(ctx, isbn)
		return err
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrBookNotFound
		case infra.IsKind(err, infra.KindConstraintViolated):
			return nil, errs.ErrShrinkBelowOutstanding
		default:
			return nil, shared.StoreError(err)
		}
	}

	slog.Info("book updated",
		slog.String("book_id", isbn.String()),
		slog.Int("total", updated.Inventory().Total()),
		slog.Int("available", updated.Inventory().Available()))

	uc.publisher.Publish(bookEvent(shared.ChangeBookUpdated, updated, uc.clock.Now()))
	return toBookView(updated), nil
}

// DeleteBook refuses while any checkout of the title is active so no ledger entry
// is left pointing at a missing book.
func (uc *catalogCommandsImpl) DeleteBook(ctx context.Context, identity user.Identity, isbnStr string) error {
	if err := requireLibrarian(identity); err != nil {
		return err
	}
	isbn, err := book.NewISBN(isbnStr)
	if err != nil {
		return err
	}

	var deleted *book.Book
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Books().FindByIDForUpdate(ctx, isbn)
		if err != nil {
			return err
		}
		active, err := tx.Checkouts().CountActiveByBook(ctx, isbn)
		if err != nil {
			return err
		}
		if active > 0 {
			return errs.ErrBookHasActiveCheckouts
		}
		deleted = current
		return tx.Books().Delete(ctx, isbn)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookNotFound
		}
		return shared.StoreError(err)
	}

	slog.Info("book deleted", slog.String("book_id", isbn.String()))
	uc.publisher.Publish(shared.ChangeEvent{
		Kind:       shared.ChangeBookDeleted,
		BookID:     isbn.String(),
		Total:      deleted.Inventory().Total(),
		Available:  deleted.Inventory().Available(),
		OccurredAt: uc.clock.Now(),
	})
	return nil
}

func (r UpdateBookRequest) hasDetails() bool {
	return r.Title != nil || r.Authors != nil || r.Edition != nil || r.Synopsis != nil || r.Tags != nil
}

func bookEvent(kind shared.ChangeKind, b *book.Book, now time.Time) shared.ChangeEvent {
	return shared.ChangeEvent{
		Kind:       kind,
		BookID:     b.ISBN().String(),
		Total:      b.Inventory().Total(),
		Available:  b.Inventory().Available(),
		OccurredAt: now,
	}
}

func toBookView(b *book.Book) *queries.BookView {
	md := b.Metadata()
	return &queries.BookView{
		ISBN:            b.ISBN().String(),
		Title:           md.Title,
		Authors:         nonNilStrings(md.Authors),
		Edition:         md.Edition,
		Synopsis:        md.Synopsis,
		Tags:            nonNilStrings(md.Tags),
		TotalCopies:     b.Inventory().Total(),
		AvailableCopies: b.Inventory().Available(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
