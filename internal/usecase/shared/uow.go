package shared

import (
	"context"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs fn as one atomic transaction against the configured backend.
// Transient store conditions are retried by re-running fn from the start, so fn
// must not have side effects outside tx.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to a single open transaction.
type Tx interface {
	Books() BookRepository
	Checkouts() CheckoutRepository
	Users() UserRepository
}

type InventoryCounts struct {
	Total     int
	Available int
}

type ReleaseResult struct {
	InventoryCounts
	// Clamped is set when the increment hit the Total ceiling.
	Clamped bool
}

// BookRepository owns the count fields. Every count mutation is a single
// conditional update, never a read followed by a blind write.
type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	FindByID(ctx context.Context, isbn book.ISBN) (*book.Book, error)
	FindByIDForUpdate(ctx context.Context, isbn book.ISBN) (*book.Book, error)
	UpdateDetails(ctx context.Context, b *book.Book) error
	Resize(ctx context.Context, isbn book.ISBN, total int) (InventoryCounts, error)
	Reserve(ctx context.Context, isbn book.ISBN, quantity int) (InventoryCounts, error)
	Release(ctx context.Context, isbn book.ISBN, quantity int) (ReleaseResult, error)
	Delete(ctx context.Context, isbn book.ISBN) error
}

type CheckoutRepository interface {
	Create(ctx context.Context, c *checkout.Checkout) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkout.Checkout, error)
	// MarkReturned only matches an active checkout.
	MarkReturned(ctx context.Context, id uuid.UUID, dateIn time.Time) error
	CountActiveByBook(ctx context.Context, isbn book.ISBN) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
