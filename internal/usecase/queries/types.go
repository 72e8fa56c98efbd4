package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookView represents read-optimized catalog data
type BookView struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Authors         []string  `json:"authors"`
	Edition         *string   `json:"edition,omitempty"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	Tags            []string  `json:"tags"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CheckoutView is a ledger entry. DateIn is nil while the checkout is active.
type CheckoutView struct {
	ID        uuid.UUID  `json:"id"`
	BookID    string     `json:"book_id"`
	SubjectID string     `json:"subject_id"`
	Quantity  int        `json:"quantity"`
	DateOut   time.Time  `json:"date_out"`
	DateIn    *time.Time `json:"date_in,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (v *CheckoutView) IsActive() bool {
	return v.DateIn == nil
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListCheckoutsFilter struct {
	SubjectID  *string
	BookID     *string
	ActiveOnly bool
}

// CheckoutKeyset is the position after which the next page starts.
type CheckoutKeyset struct {
	DateOut time.Time
	ID      uuid.UUID
}
