package request

import (
	"library-circulation/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CreateBookRequest struct {
	ISBN            string   `json:"isbn" binding:"required,isbn"`
	Title           string   `json:"title" binding:"required,max=300"`
	Authors         []string `json:"authors" binding:"required,min=1,dive,required"`
	Edition         *string  `json:"edition,omitempty" binding:"omitempty,max=100"`
	Synopsis        *string  `json:"synopsis,omitempty" binding:"omitempty,max=4000"`
	Tags            []string `json:"tags,omitempty" binding:"omitempty,dive,required,max=50"`
	TotalCopies     int      `json:"totalCopies" binding:"gte=0"`
	AvailableCopies *int     `json:"availableCopies,omitempty" binding:"omitempty,gte=0"`
}

func (r *CreateBookRequest) ToCommand() (commands.CreateBookRequest, error) {
	var cmd commands.CreateBookRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.CreateBookRequest{}, err
	}
	return cmd, nil
}

// UpdateBookRequest is a partial update: omitted fields keep their stored value.
type UpdateBookRequest struct {
	Title       *string   `json:"title,omitempty" binding:"omitempty,max=300"`
	Authors     *[]string `json:"authors,omitempty" binding:"omitempty,min=1,dive,required"`
	Edition     *string   `json:"edition,omitempty" binding:"omitempty,max=100"`
	Synopsis    *string   `json:"synopsis,omitempty" binding:"omitempty,max=4000"`
	Tags        *[]string `json:"tags,omitempty" binding:"omitempty,dive,required,max=50"`
	TotalCopies *int      `json:"totalCopies,omitempty" binding:"omitempty,gte=0"`
}

func (r *UpdateBookRequest) ToCommand() (commands.UpdateBookRequest, error) {
	var cmd commands.UpdateBookRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.UpdateBookRequest{}, err
	}
	return cmd, nil
}

type ListBooksQuery struct {
	Limit int    `form:"limit" binding:"omitempty,gte=0"`
	After string `form:"after"`
}
