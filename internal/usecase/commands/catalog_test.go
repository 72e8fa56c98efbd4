//go:build unit

package commands_test

import (
	"context"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/shared"
	"library-circulation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func (s *engineSuite) TestCreateBook() {
	ctx := context.Background()
	b := builder.NewBookBuilder().WithISBN("9780000000301").WithCopies(4)

	view, err := s.catalog.CreateBook(ctx, s.librarian, b.BuildCreateRequest())
	s.Require().NoError(err)

	want := b.With(func(b *builder.BookBuilder) { b.CreatedAt = testStart }).BuildView()
	if diff := cmp.Diff(want, view); diff != "" {
		s.T().Errorf("created book mismatch (-want +got):\n%s", diff)
	}

	stored, err := s.books.GetByID(ctx, view.ISBN)
	s.Require().NoError(err)
	if diff := cmp.Diff(view, stored, cmpopts.EquateEmpty()); diff != "" {
		s.T().Errorf("stored book mismatch (-want +got):\n%s", diff)
	}
}

func (s *engineSuite) TestCreateBookRejections() {
	ctx := context.Background()
	s.createBook("9780000000302", 1)

	four := 4
	testCases := []struct {
		name     string
		identity user.Identity
		mutate   func(*commands.CreateBookRequest)
		errIs    error
	}{
		{
			name:     "general user",
			identity: s.alice,
			errIs:    errs.ErrPrivilegedRoleRequired,
		},
		{
			name:     "instructor",
			identity: user.Identity{SubjectID: "carol", Role: user.RoleInstructor},
			errIs:    errs.ErrPrivilegedRoleRequired,
		},
		{
			name:     "duplicate isbn",
			identity: s.librarian,
			mutate:   func(r *commands.CreateBookRequest) { r.ISBN = "9780000000302" },
			errIs:    errs.ErrDuplicateISBN,
		},
		{
			name:     "available differs from total",
			identity: s.librarian,
			mutate:   func(r *commands.CreateBookRequest) { r.AvailableCopies = &four },
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "negative total",
			identity: s.librarian,
			mutate:   func(r *commands.CreateBookRequest) { r.TotalCopies = -1 },
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "no authors",
			identity: s.librarian,
			mutate:   func(r *commands.CreateBookRequest) { r.Authors = []string{" "} },
			errIs:    errs.ErrInvalidInput,
		},
		{
			name:     "empty title",
			identity: s.librarian,
			mutate:   func(r *commands.CreateBookRequest) { r.Title = "" },
			errIs:    errs.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := builder.NewBookBuilder().WithISBN("9780000000303").WithCopies(3).BuildCreateRequest()
			if tc.mutate != nil {
				tc.mutate(&req)
			}
			_, err := s.catalog.CreateBook(ctx, tc.identity, req)
			s.Require().Error(err)
			s.True(errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
		})
	}
}

func (s *engineSuite) TestUpdateBookDetailsKeepsCounts() {
	const isbn = "9780000000304"
	ctx := context.Background()
	s.createBook(isbn, 3)
	_, err := s.checkout(s.alice, isbn, 2)
	s.Require().NoError(err)

	s.clock.Add(time.Hour)
	title := "Second Edition Title"
	edition := "2nd"
	tags := []string{"revised"}
	view, err := s.catalog.UpdateBook(ctx, s.librarian, isbn, commands.UpdateBookRequest{
		Title:   &title,
		Edition: &edition,
		Tags:    &tags,
	})
	s.Require().NoError(err)

	s.Equal(title, view.Title)
	s.Require().NotNil(view.Edition)
	s.Equal(edition, *view.Edition)
	s.Equal([]string{"revised"}, view.Tags)
	s.Equal([]string{"Alan Donovan", "Brian Kernighan"}, view.Authors)
	s.Equal(3, view.TotalCopies)
	s.Equal(1, view.AvailableCopies)
	s.Equal(testStart.Add(time.Hour), view.UpdatedAt)
}

func (s *engineSuite) TestUpdateBookResize() {
	const isbn = "9780000000305"
	ctx := context.Background()
	s.createBook(isbn, 5)
	_, err := s.checkout(s.alice, isbn, 3)
	s.Require().NoError(err)

	resize := func(total int) error {
		_, err := s.catalog.UpdateBook(ctx, s.librarian, isbn, commands.UpdateBookRequest{TotalCopies: &total})
		return err
	}

	s.Run("growing shifts available by the same delta", func() {
		s.Require().NoError(resize(8))
		s.Equal(5, s.available(isbn))
	})

	s.Run("shrinking down to the outstanding quantity is allowed", func() {
		s.Require().NoError(resize(3))
		s.Equal(0, s.available(isbn))
	})

	s.Run("shrinking below the outstanding quantity is refused", func() {
		err := resize(2)
		s.ErrorIs(err, errs.ErrShrinkBelowOutstanding)
		s.True(errs.Is(err, errs.ErrConflict))
		s.Equal(0, s.available(isbn))
	})

	s.Run("negative total is invalid", func() {
		err := resize(-1)
		s.True(errs.Is(err, errs.ErrInvalidInput))
	})

	s.Equal(3, s.outstanding(isbn))
}

func (s *engineSuite) TestUpdateBookRejections() {
	ctx := context.Background()
	title := "Anything"

	_, err := s.catalog.UpdateBook(ctx, s.alice, "9780000000306", commands.UpdateBookRequest{Title: &title})
	s.ErrorIs(err, errs.ErrPrivilegedRoleRequired)

	_, err = s.catalog.UpdateBook(ctx, s.librarian, "9780000000306", commands.UpdateBookRequest{Title: &title})
	s.ErrorIs(err, errs.ErrBookNotFound)

	s.createBook("9780000000306", 1)
	blank := " "
	_, err = s.catalog.UpdateBook(ctx, s.librarian, "9780000000306", commands.UpdateBookRequest{Title: &blank})
	s.True(errs.Is(err, errs.ErrInvalidInput))
}

func (s *engineSuite) TestDeleteBook() {
	const isbn = "9780000000307"
	ctx := context.Background()
	s.createBook(isbn, 2)

	co, err := s.checkout(s.alice, isbn, 1)
	s.Require().NoError(err)

	s.Run("refused while a checkout is active", func() {
		err := s.catalog.DeleteBook(ctx, s.librarian, isbn)
		s.ErrorIs(err, errs.ErrBookHasActiveCheckouts)
		s.Equal(1, s.available(isbn))
	})

	s.Run("refused for non-librarians", func() {
		err := s.catalog.DeleteBook(ctx, s.bob, isbn)
		s.ErrorIs(err, errs.ErrPrivilegedRoleRequired)
	})

	_, err = s.circulation.Return(ctx, s.alice, co.ID)
	s.Require().NoError(err)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := s.broker.Subscribe(subCtx)

	s.Run("allowed once everything is back", func() {
		s.Require().NoError(s.catalog.DeleteBook(ctx, s.librarian, isbn))
		_, err := s.books.GetByID(ctx, isbn)
		s.ErrorIs(err, errs.ErrBookNotFound)
	})

	s.Run("deleting twice reports not found", func() {
		err := s.catalog.DeleteBook(ctx, s.librarian, isbn)
		s.ErrorIs(err, errs.ErrBookNotFound)
	})

	s.Equal([]shared.ChangeKind{shared.ChangeBookDeleted}, kinds(collect(events, 200*time.Millisecond)))

	s.Run("returned ledger entries survive the delete", func() {
		stored, err := s.checkouts.GetByID(ctx, s.alice, co.ID)
		s.Require().NoError(err)
		s.False(stored.IsActive())
	})
}
