package checkout

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errs.Mark(errors.New("quantity must be a positive integer"), errs.ErrInvalidInput)
	ErrNotesTooLong    = errs.Mark(errors.New("notes must be at most 1024 characters"), errs.ErrInvalidInput)
	ErrInvalidSubject  = errs.Mark(errors.New("subject id is required"), errs.ErrInvalidInput)
	ErrAlreadyReturned = errs.Mark(errors.New("checkout has already been returned"), errs.ErrAlreadyReturned)
)

const MaxNotesLength = 1024

// Checkout is a ledger record of copies taken out by one subject.
// DateIn is nil while the checkout is active and is set exactly once.
type Checkout struct {
	id        uuid.UUID
	bookID    book.ISBN
	subjectID string
	quantity  int
	dateOut   time.Time
	dateIn    *time.Time
	notes     *string
}

func New(bookID book.ISBN, subjectID string, quantity int, notes *string, now time.Time) (*Checkout, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, ErrInvalidSubject
	}
	if notes != nil {
		n := strings.TrimSpace(*notes)
		if utf8.RuneCountInString(n) > MaxNotesLength {
			return nil, ErrNotesTooLong
		}
		if n == "" {
			notes = nil
		} else {
			notes = &n
		}
	}
	return &Checkout{
		id:        uuid.New(),
		bookID:    bookID,
		subjectID: subjectID,
		quantity:  quantity,
		dateOut:   now,
		notes:     notes,
	}, nil
}

func Reconstruct(id uuid.UUID, bookID book.ISBN, subjectID string, quantity int, dateOut time.Time, dateIn *time.Time, notes *string) *Checkout {
	return &Checkout{
		id:        id,
		bookID:    bookID,
		subjectID: subjectID,
		quantity:  quantity,
		dateOut:   dateOut,
		dateIn:    dateIn,
		notes:     notes,
	}
}

func (c *Checkout) ID() uuid.UUID      { return c.id }
func (c *Checkout) BookID() book.ISBN  { return c.bookID }
func (c *Checkout) SubjectID() string  { return c.subjectID }
func (c *Checkout) Quantity() int      { return c.quantity }
func (c *Checkout) DateOut() time.Time { return c.dateOut }
func (c *Checkout) DateIn() *time.Time { return c.dateIn }
func (c *Checkout) Notes() *string     { return c.notes }
func (c *Checkout) IsActive() bool     { return c.dateIn == nil }

// CanBeReturnedBy: the owner or a privileged role.
func (c *Checkout) CanBeReturnedBy(id user.Identity) bool {
	return id.Role.IsPrivileged() || id.Owns(c.subjectID)
}

// CanBeViewedBy: the owner or any role that sees all checkouts.
func (c *Checkout) CanBeViewedBy(id user.Identity) bool {
	return id.Role.SeesAllCheckouts() || id.Owns(c.subjectID)
}

// MarkReturned sets DateIn, never earlier than DateOut.
func (c *Checkout) MarkReturned(now time.Time) error {
	if c.dateIn != nil {
		return ErrAlreadyReturned
	}
	in := now
	if in.Before(c.dateOut) {
		in = c.dateOut
	}
	c.dateIn = &in
	return nil
}
