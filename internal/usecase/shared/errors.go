package shared

import (
	"context"
	"errors"

	"library-circulation/internal/pkg/errs"
)

// StoreError passes classified errors through and turns anything else from the
// store into ErrStoreUnavailable. Callers map the repository kinds they expect
// before calling it.
func StoreError(err error) error {
	if err == nil {
		return nil
	}
	if errs.Classified(err) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errs.Mark(err, errs.ErrStoreUnavailable)
}
