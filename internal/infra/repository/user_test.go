//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserWriteQueries struct {
	mock.Mock
}

func (m *MockUserWriteQueries) CreateUser(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateUserParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockUserWriteQueries) UpdateUserLastLogin(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateUserLastLoginParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func TestUserCreate(t *testing.T) {
	u, err := builder.NewUserBuilder().AsInstructor().BuildDomain()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockUserWriteQueries)
		mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgsql.CreateUserParams) bool {
			return p.ID == u.ID() && p.Role == "instructor" && p.IsActive
		})).Return(nil)

		assert.NoError(t, NewUserRepository(mockQueries, nil).Create(context.Background(), u))
		mockQueries.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockQueries := new(MockUserWriteQueries)
		mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

		err := NewUserRepository(mockQueries, nil).Create(context.Background(), u)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockError error
		wantError bool
	}{
		{
			name:      "success",
			mockError: nil,
			wantError: false,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("UpdateUserLastLogin", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgsql.UpdateUserLastLoginParams) bool {
				return p.ID == testUserID && p.LastLogin.Time.Equal(at)
			})).Return(tt.mockError)

			err := NewUserRepository(mockQueries, nil).UpdateLastLogin(context.Background(), testUserID, at)

			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}
