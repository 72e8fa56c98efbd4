package book

import (
	"errors"

	"library-circulation/internal/pkg/errs"
)

var (
	ErrInvalidCopies     = errs.Mark(errors.New("copy counts must satisfy 0 <= available <= total"), errs.ErrInvalidInput)
	ErrInvalidQuantity   = errs.Mark(errors.New("quantity must be a positive integer"), errs.ErrInvalidInput)
	ErrInsufficientStock = errs.Mark(errors.New("not enough available copies"), errs.ErrInsufficientInventory)
)

// Inventory holds the per-title counts. Every constructor and transition keeps
// 0 <= Available <= Total.
type Inventory struct {
	total     int
	available int
}

func NewInventory(total, available int) (Inventory, error) {
	if total < 0 || available < 0 || available > total {
		return Inventory{}, ErrInvalidCopies
	}
	return Inventory{total: total, available: available}, nil
}

// FullInventory is the state of a title with nothing checked out.
func FullInventory(total int) (Inventory, error) {
	return NewInventory(total, total)
}

func (i Inventory) Total() int     { return i.total }
func (i Inventory) Available() int { return i.available }

// Outstanding is the quantity currently checked out.
func (i Inventory) Outstanding() int {
	return i.total - i.available
}

// Reserve is decrement-if-sufficient.
func (i Inventory) Reserve(quantity int) (Inventory, error) {
	if quantity < 1 {
		return i, ErrInvalidQuantity
	}
	if i.available < quantity {
		return i, ErrInsufficientStock
	}
	return Inventory{total: i.total, available: i.available - quantity}, nil
}

// Release is increment-with-ceiling. clamped reports that the increment would have
// exceeded Total, which means the counts were already inconsistent with the ledger.
func (i Inventory) Release(quantity int) (next Inventory, clamped bool, err error) {
	if quantity < 1 {
		return i, false, ErrInvalidQuantity
	}
	available := i.available + quantity
	if available > i.total {
		available = i.total
		clamped = true
	}
	return Inventory{total: i.total, available: available}, clamped, nil
}

// Resize changes Total and shifts Available by the same delta so the outstanding
// quantity is preserved.
func (i Inventory) Resize(total int) (Inventory, error) {
	if total < 0 {
		return i, ErrInvalidCopies
	}
	available := i.available + (total - i.total)
	if available < 0 {
		return i, errs.ErrShrinkBelowOutstanding
	}
	return Inventory{total: total, available: available}, nil
}
