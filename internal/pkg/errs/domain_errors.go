package errs

import "errors"

// Outcome kinds surfaced to callers. Specific errors are marked with one of these.
var (
	ErrNotFound              = errors.New("not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrAlreadyReturned       = errors.New("checkout already returned")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")

	// ErrStoreUnavailable is the only kind that is safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	// Catalog
	ErrBookNotFound           = Mark(errors.New("book not found"), ErrNotFound)
	ErrDuplicateISBN          = Mark(errors.New("book with this isbn already exists"), ErrConflict)
	ErrBookHasActiveCheckouts = Mark(errors.New("book has active checkouts"), ErrConflict)
	ErrShrinkBelowOutstanding = Mark(errors.New("total copies below checked out quantity"), ErrConflict)

	// Ledger
	ErrCheckoutNotFound = Mark(errors.New("checkout not found"), ErrNotFound)
	ErrNotCheckoutOwner = Mark(errors.New("checkout belongs to another subject"), ErrForbidden)

	// Identity
	ErrPrivilegedRoleRequired = Mark(errors.New("privileged role required"), ErrForbidden)
	ErrDuplicateEmail         = Mark(errors.New("email already registered"), ErrConflict)
)

// IsRetryable reports whether the caller may safely repeat the request.
func IsRetryable(err error) bool {
	return Is(err, ErrStoreUnavailable)
}

var taxonomy = []error{
	ErrNotFound,
	ErrInsufficientInventory,
	ErrAlreadyReturned,
	ErrForbidden,
	ErrInvalidInput,
	ErrConflict,
	ErrStoreUnavailable,
}

// Classified reports whether err already carries one of the outcome kinds.
func Classified(err error) bool {
	for _, kind := range taxonomy {
		if Is(err, kind) {
			return true
		}
	}
	return false
}
