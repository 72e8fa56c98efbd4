//go:build unit

package checkout_test

import (
	"strings"
	"testing"
	"time"

	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"
	"library-circulation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateOut = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	t.Run("basic success", func(t *testing.T) {
		co, err := builder.NewCheckoutBuilder().WithSubjectID("alice").WithQuantity(2).BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, co.ID())
		assert.Equal(t, "alice", co.SubjectID())
		assert.Equal(t, 2, co.Quantity())
		assert.Equal(t, dateOut, co.DateOut())
		assert.Nil(t, co.DateIn())
		assert.Nil(t, co.Notes())
		assert.True(t, co.IsActive())
	})

	tests := []struct {
		name   string
		mutate func(*builder.CheckoutBuilder)
		errIs  error
	}{
		{name: "zero quantity", mutate: func(b *builder.CheckoutBuilder) { b.WithQuantity(0) }, errIs: checkout.ErrInvalidQuantity},
		{name: "negative quantity", mutate: func(b *builder.CheckoutBuilder) { b.WithQuantity(-3) }, errIs: checkout.ErrInvalidQuantity},
		{name: "blank subject", mutate: func(b *builder.CheckoutBuilder) { b.WithSubjectID("  ") }, errIs: checkout.ErrInvalidSubject},
		{
			name:   "notes too long",
			mutate: func(b *builder.CheckoutBuilder) { b.WithNotes(strings.Repeat("n", checkout.MaxNotesLength+1)) },
			errIs:  checkout.ErrNotesTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			co, err := builder.NewCheckoutBuilder().With(tt.mutate).BuildDomain()
			assert.Nil(t, co)
			assert.ErrorIs(t, err, tt.errIs)
			assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		})
	}

	t.Run("notes are trimmed and blank notes dropped", func(t *testing.T) {
		co, err := builder.NewCheckoutBuilder().WithNotes("  shelf B  ").BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, co.Notes())
		assert.Equal(t, "shelf B", *co.Notes())

		co, err = builder.NewCheckoutBuilder().WithNotes("   ").BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, co.Notes())
	})
}

func TestMarkReturned(t *testing.T) {
	t.Run("sets date in once", func(t *testing.T) {
		co := builder.NewCheckoutBuilder().BuildStored()
		in := dateOut.Add(72 * time.Hour)

		require.NoError(t, co.MarkReturned(in))
		require.NotNil(t, co.DateIn())
		assert.Equal(t, in, *co.DateIn())
		assert.False(t, co.IsActive())

		err := co.MarkReturned(in.Add(time.Hour))
		assert.ErrorIs(t, err, checkout.ErrAlreadyReturned)
		assert.True(t, errs.Is(err, errs.ErrAlreadyReturned))
		assert.Equal(t, in, *co.DateIn())
	})

	t.Run("a clock behind date out is clamped", func(t *testing.T) {
		co := builder.NewCheckoutBuilder().BuildStored()
		require.NoError(t, co.MarkReturned(dateOut.Add(-time.Minute)))
		assert.Equal(t, dateOut, *co.DateIn())
	})

	t.Run("a stored returned checkout is not active", func(t *testing.T) {
		co := builder.NewCheckoutBuilder().AsReturned(dateOut.Add(time.Hour)).BuildStored()
		assert.False(t, co.IsActive())
		assert.ErrorIs(t, co.MarkReturned(dateOut.Add(2*time.Hour)), checkout.ErrAlreadyReturned)
	})
}

func TestCheckoutPermissions(t *testing.T) {
	co := builder.NewCheckoutBuilder().WithSubjectID("alice").BuildStored()

	tests := []struct {
		name       string
		identity   user.Identity
		canReturn  bool
		canViewOne bool
	}{
		{name: "owner", identity: user.Identity{SubjectID: "alice", Role: user.RoleGeneralUser}, canReturn: true, canViewOne: true},
		{name: "other general user", identity: user.Identity{SubjectID: "bob", Role: user.RoleGeneralUser}},
		{name: "instructor", identity: user.Identity{SubjectID: "carol", Role: user.RoleInstructor}, canViewOne: true},
		{name: "librarian", identity: user.Identity{SubjectID: "dave", Role: user.RoleLibrarian}, canReturn: true, canViewOne: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canReturn, co.CanBeReturnedBy(tt.identity))
			assert.Equal(t, tt.canViewOne, co.CanBeViewedBy(tt.identity))
		})
	}
}
