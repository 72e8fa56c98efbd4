//go:build unit

package commands_test

import (
	"context"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

func (s *engineSuite) TestCheckoutAndReturnLifecycle() {
	const isbn = "9780000000201"
	ctx := context.Background()
	s.createBook(isbn, 3)

	first, err := s.checkout(s.alice, isbn, 2)
	s.Require().NoError(err)
	s.Equal(1, s.available(isbn))
	s.True(first.IsActive())
	s.Equal("alice", first.SubjectID)
	s.Equal(testStart, first.DateOut)

	_, err = s.checkout(s.bob, isbn, 2)
	s.ErrorIs(err, book.ErrInsufficientStock)
	s.Equal(1, s.available(isbn), "a refused checkout leaves the counts untouched")

	s.clock.Add(48 * time.Hour)
	returned, err := s.circulation.Return(ctx, s.alice, first.ID)
	s.Require().NoError(err)
	s.Require().NotNil(returned.DateIn)
	s.Equal(testStart.Add(48*time.Hour), *returned.DateIn)
	s.Equal(3, s.available(isbn))

	_, err = s.circulation.Return(ctx, s.alice, first.ID)
	s.ErrorIs(err, checkout.ErrAlreadyReturned)
	s.True(errs.Is(err, errs.ErrAlreadyReturned))
	s.Equal(3, s.available(isbn), "a second return must not add copies")
}

func (s *engineSuite) TestCheckoutValidation() {
	const isbn = "9780000000202"
	s.createBook(isbn, 2)

	testCases := []struct {
		name     string
		identity user.Identity
		req      commands.CheckoutRequest
		errIs    error
	}{
		{
			name:     "zero quantity",
			identity: s.alice,
			req:      commands.CheckoutRequest{BookID: isbn, Quantity: 0},
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "negative quantity",
			identity: s.alice,
			req:      commands.CheckoutRequest{BookID: isbn, Quantity: -1},
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "blank book id",
			identity: s.alice,
			req:      commands.CheckoutRequest{BookID: "  ", Quantity: 1},
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "unknown book",
			identity: s.alice,
			req:      commands.CheckoutRequest{BookID: "9789999999999", Quantity: 1},
			errIs:    errs.ErrBookNotFound,
		},
		{
			name:     "more than total",
			identity: s.alice,
			req:      commands.CheckoutRequest{BookID: isbn, Quantity: 3},
			errIs:    errs.ErrInsufficientInventory,
		},
		{
			name:     "missing subject",
			identity: user.Identity{Role: user.RoleGeneralUser},
			req:      commands.CheckoutRequest{BookID: isbn, Quantity: 1},
			errIs:    errs.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.circulation.Checkout(context.Background(), tc.identity, tc.req)
			s.Require().Error(err)
			s.True(errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
			s.Equal(2, s.available(isbn))
		})
	}
}

func (s *engineSuite) TestReturnAuthorization() {
	const isbn = "9780000000203"
	ctx := context.Background()
	s.createBook(isbn, 4)

	co, err := s.checkout(s.alice, isbn, 1)
	s.Require().NoError(err)

	s.Run("another general user is refused", func() {
		_, err := s.circulation.Return(ctx, s.bob, co.ID)
		s.ErrorIs(err, errs.ErrNotCheckoutOwner)
		s.Equal(3, s.available(isbn))
	})

	s.Run("an instructor cannot return for someone else", func() {
		instructor := user.Identity{SubjectID: "carol", Role: user.RoleInstructor}
		_, err := s.circulation.Return(ctx, instructor, co.ID)
		s.ErrorIs(err, errs.ErrNotCheckoutOwner)
	})

	s.Run("unknown checkout", func() {
		_, err := s.circulation.Return(ctx, s.alice, uuid.New())
		s.ErrorIs(err, errs.ErrCheckoutNotFound)
	})

	s.Run("a librarian may return on behalf of the owner", func() {
		returned, err := s.circulation.Return(ctx, s.librarian, co.ID)
		s.Require().NoError(err)
		s.Equal("alice", returned.SubjectID)
		s.Equal(4, s.available(isbn))
	})

	s.Run("non-owner of a returned checkout still gets forbidden", func() {
		_, err := s.circulation.Return(ctx, s.bob, co.ID)
		s.ErrorIs(err, errs.ErrNotCheckoutOwner)
	})
}

func (s *engineSuite) TestReturnDateNeverPrecedesDateOut() {
	const isbn = "9780000000204"
	s.createBook(isbn, 1)

	co, err := s.checkout(s.alice, isbn, 1)
	s.Require().NoError(err)

	s.clock.Set(testStart.Add(-time.Hour))
	returned, err := s.circulation.Return(context.Background(), s.alice, co.ID)
	s.Require().NoError(err)
	s.Require().NotNil(returned.DateIn)
	s.Equal(co.DateOut, *returned.DateIn)
}

func (s *engineSuite) TestCheckoutNotesAreTrimmed() {
	const isbn = "9780000000205"
	s.createBook(isbn, 1)

	notes := "  for the reading group  "
	co, err := s.circulation.Checkout(context.Background(), s.alice,
		commands.CheckoutRequest{BookID: isbn, Quantity: 1, Notes: &notes})
	s.Require().NoError(err)
	s.Require().NotNil(co.Notes)
	s.Equal("for the reading group", *co.Notes)

	stored, err := s.checkouts.GetByID(context.Background(), s.alice, co.ID)
	s.Require().NoError(err)
	s.Equal(co.Notes, stored.Notes)
}

func (s *engineSuite) TestReturnClampsAtTotalAndReportsAnomaly() {
	const isbn = "9780000000206"
	ctx := context.Background()
	s.createBook(isbn, 2)

	co, err := s.checkout(s.alice, isbn, 2)
	s.Require().NoError(err)

	// Simulate drift: the counts say everything is on the shelf while the ledger
	// still holds an active checkout.
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET body = json_set(body, '$.availableCopies', 2) WHERE collection = 'books' AND id = ?`, isbn)
	s.Require().NoError(err)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := s.broker.Subscribe(subCtx)

	_, err = s.circulation.Return(ctx, s.alice, co.ID)
	s.Require().NoError(err)
	s.Equal(2, s.available(isbn), "available never exceeds total")

	got := collect(events, 200*time.Millisecond)
	s.Equal([]shared.ChangeKind{shared.ChangeInventoryAnomaly, shared.ChangeCheckoutReturned}, kinds(got))
}

func (s *engineSuite) TestCheckoutPublishesChanges() {
	const isbn = "9780000000207"
	ctx := context.Background()
	s.createBook(isbn, 3)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := s.broker.Subscribe(subCtx)

	co, err := s.checkout(s.alice, isbn, 2)
	s.Require().NoError(err)
	_, err = s.checkout(s.bob, isbn, 5)
	s.Require().Error(err)
	_, err = s.circulation.Return(ctx, s.alice, co.ID)
	s.Require().NoError(err)

	got := collect(events, 200*time.Millisecond)
	s.Require().Len(got, 2, "a failed checkout publishes nothing")

	s.Equal(shared.ChangeCheckoutCreated, got[0].Kind)
	s.Equal(isbn, got[0].BookID)
	s.Equal("alice", got[0].SubjectID)
	s.Equal(2, got[0].Quantity)
	s.Equal(1, got[0].Available)
	s.Equal(3, got[0].Total)
	s.Require().NotNil(got[0].CheckoutID)
	s.Equal(co.ID, *got[0].CheckoutID)

	s.Equal(shared.ChangeCheckoutReturned, got[1].Kind)
	s.Equal(3, got[1].Available)
}
