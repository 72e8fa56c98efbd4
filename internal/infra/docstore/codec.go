package docstore

import (
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

// Timestamps are stored as unix microseconds so json_extract orders them numerically.

type bookDoc struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Edition         *string  `json:"edition,omitempty"`
	Synopsis        *string  `json:"synopsis,omitempty"`
	Tags            []string `json:"tags"`
	TotalCopies     int      `json:"totalCopies"`
	AvailableCopies int      `json:"availableCopies"`
	CreatedAt       int64    `json:"createdAt"`
	UpdatedAt       int64    `json:"updatedAt"`
}

type checkoutDoc struct {
	BookID    string  `json:"bookId"`
	SubjectID string  `json:"subjectId"`
	Quantity  int     `json:"quantity"`
	DateOut   int64   `json:"dateOut"`
	DateIn    *int64  `json:"dateIn"`
	Notes     *string `json:"notes,omitempty"`
}

type userDoc struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	LastLogin    *int64 `json:"lastLogin,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// JSON property names used in queries.
const (
	fieldAvailableCopies = "availableCopies"
	fieldBookID          = "bookId"
	fieldSubjectID       = "subjectId"
	fieldDateOut         = "dateOut"
	fieldDateIn          = "dateIn"
	fieldEmail           = "email"
)

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func fromMicrosPtr(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := fromMicros(*v)
	return &t
}

func microsPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMicro()
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func newBookDoc(b *book.Book) bookDoc {
	md := b.Metadata()
	return bookDoc{
		Title:           md.Title,
		Authors:         nonNil(md.Authors),
		Edition:         md.Edition,
		Synopsis:        md.Synopsis,
		Tags:            nonNil(md.Tags),
		TotalCopies:     b.Inventory().Total(),
		AvailableCopies: b.Inventory().Available(),
		CreatedAt:       b.CreatedAt().UnixMicro(),
		UpdatedAt:       b.UpdatedAt().UnixMicro(),
	}
}

func (d bookDoc) toDomain(isbn string) (*book.Book, error) {
	inv, err := book.NewInventory(d.TotalCopies, d.AvailableCopies)
	if err != nil {
		return nil, errs.Wrapf(err, "stored counts for book %s", isbn)
	}
	md := book.Metadata{
		Title:    d.Title,
		Authors:  d.Authors,
		Edition:  d.Edition,
		Synopsis: d.Synopsis,
		Tags:     d.Tags,
	}
	return book.ReconstructBook(book.ISBN(isbn), md, inv, fromMicros(d.CreatedAt), fromMicros(d.UpdatedAt)), nil
}

func (d bookDoc) toView(isbn string) *queries.BookView {
	return &queries.BookView{
		ISBN:            isbn,
		Title:           d.Title,
		Authors:         nonNil(d.Authors),
		Edition:         d.Edition,
		Synopsis:        d.Synopsis,
		Tags:            nonNil(d.Tags),
		TotalCopies:     d.TotalCopies,
		AvailableCopies: d.AvailableCopies,
		CreatedAt:       fromMicros(d.CreatedAt),
		UpdatedAt:       fromMicros(d.UpdatedAt),
	}
}

func newCheckoutDoc(c *checkout.Checkout) checkoutDoc {
	return checkoutDoc{
		BookID:    c.BookID().String(),
		SubjectID: c.SubjectID(),
		Quantity:  c.Quantity(),
		DateOut:   c.DateOut().UnixMicro(),
		DateIn:    microsPtr(c.DateIn()),
		Notes:     c.Notes(),
	}
}

func (d checkoutDoc) toDomain(id uuid.UUID) *checkout.Checkout {
	return checkout.Reconstruct(
		id,
		book.ISBN(d.BookID),
		d.SubjectID,
		d.Quantity,
		fromMicros(d.DateOut),
		fromMicrosPtr(d.DateIn),
		d.Notes,
	)
}

func (d checkoutDoc) toView(id uuid.UUID) *queries.CheckoutView {
	return &queries.CheckoutView{
		ID:        id,
		BookID:    d.BookID,
		SubjectID: d.SubjectID,
		Quantity:  d.Quantity,
		DateOut:   fromMicros(d.DateOut),
		DateIn:    fromMicrosPtr(d.DateIn),
		Notes:     d.Notes,
	}
}

func newUserDoc(u *user.User) userDoc {
	return userDoc{
		Email:        u.Email().Value(),
		Name:         u.Name().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		LastLogin:    microsPtr(u.LastLogin()),
		CreatedAt:    u.CreatedAt().UnixMicro(),
		UpdatedAt:    u.UpdatedAt().UnixMicro(),
	}
}

func (d userDoc) toView(id uuid.UUID) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        id,
		Email:     d.Email,
		Name:      d.Name,
		Role:      d.Role,
		IsActive:  d.IsActive,
		LastLogin: fromMicrosPtr(d.LastLogin),
		CreatedAt: fromMicros(d.CreatedAt),
	}
}
