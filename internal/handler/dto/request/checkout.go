package request

import (
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"
)

type CreateCheckoutRequest struct {
	BookID   string  `json:"bookId" binding:"required,isbn"`
	Quantity *int    `json:"quantity,omitempty" binding:"omitempty,gte=1"`
	Notes    *string `json:"notes,omitempty" binding:"omitempty,max=1024"`
}

const defaultCheckoutQuantity = 1

// ToCommand fills in a single copy when quantity was omitted.
func (r *CreateCheckoutRequest) ToCommand() commands.CheckoutRequest {
	quantity := defaultCheckoutQuantity
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return commands.CheckoutRequest{
		BookID:   r.BookID,
		Quantity: quantity,
		Notes:    r.Notes,
	}
}

type ListCheckoutsQuery struct {
	BookID    string `form:"bookId" binding:"omitempty,isbn"`
	SubjectID string `form:"subjectId"`
	Active    bool   `form:"active"`
	Limit     int    `form:"limit" binding:"omitempty,gte=0"`
	After     string `form:"after"`
}

func (q *ListCheckoutsQuery) Filter() queries.ListCheckoutsFilter {
	filter := queries.ListCheckoutsFilter{ActiveOnly: q.Active}
	if q.BookID != "" {
		bookID := q.BookID
		filter.BookID = &bookID
	}
	if q.SubjectID != "" {
		subjectID := q.SubjectID
		filter.SubjectID = &subjectID
	}
	return filter
}

// Cursor returns nil when no page position was supplied.
func Cursor(after string) *queries.Cursor {
	if after == "" {
		return nil
	}
	return &queries.Cursor{After: after}
}
