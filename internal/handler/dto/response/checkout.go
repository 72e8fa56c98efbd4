package response

import (
	"time"

	"library-circulation/internal/usecase/queries"
)

type CheckoutResponse struct {
	ID        string     `json:"id"`
	BookID    string     `json:"bookId"`
	SubjectID string     `json:"subjectId"`
	Quantity  int        `json:"quantity"`
	DateOut   time.Time  `json:"dateOut"`
	DateIn    *time.Time `json:"dateIn,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func FromCheckoutView(v *queries.CheckoutView) *CheckoutResponse {
	return &CheckoutResponse{
		ID:        v.ID.String(),
		BookID:    v.BookID,
		SubjectID: v.SubjectID,
		Quantity:  v.Quantity,
		DateOut:   v.DateOut,
		DateIn:    v.DateIn,
		Notes:     v.Notes,
	}
}

type CheckoutListResponse struct {
	Items      []*CheckoutResponse `json:"items"`
	NextCursor *string             `json:"nextCursor,omitempty"`
}

func FromCheckoutList(views []*queries.CheckoutView, next *queries.Cursor) *CheckoutListResponse {
	items := make([]*CheckoutResponse, len(views))
	for i, v := range views {
		items[i] = FromCheckoutView(v)
	}
	return &CheckoutListResponse{Items: items, NextCursor: cursorValue(next)}
}
