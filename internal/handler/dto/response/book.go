package response

import (
	"time"

	"library-circulation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookResponse struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Authors         []string  `json:"authors"`
	Edition         *string   `json:"edition,omitempty"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	Tags            []string  `json:"tags"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	var res BookResponse
	_ = copier.Copy(&res, v)
	if res.Authors == nil {
		res.Authors = []string{}
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	return &res
}

type BookListResponse struct {
	Items      []*BookResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func FromBookList(views []*queries.BookView, next *queries.Cursor) *BookListResponse {
	items := make([]*BookResponse, len(views))
	for i, v := range views {
		items[i] = FromBookView(v)
	}
	return &BookListResponse{Items: items, NextCursor: cursorValue(next)}
}

func cursorValue(c *queries.Cursor) *string {
	if c == nil || c.After == "" {
		return nil
	}
	after := c.After
	return &after
}
