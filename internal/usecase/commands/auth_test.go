//go:build unit

package commands_test

import (
	"context"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra/docstore"
	"library-circulation/internal/infra/uow"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/pkg/jwt"
	"library-circulation/internal/pkg/password"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"
	"library-circulation/tests/common/builder"

	"golang.org/x/crypto/bcrypt"
)

func (s *engineSuite) newAuth() (commands.AuthCommands, *jwt.Service) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	work := uow.NewDocumentUoW(s.db, s.clock, config.NewTestConfig().Tx)
	return commands.NewAuthCommands(
		work,
		docstore.NewUserReadStore(s.db),
		jwtService,
		password.NewHasher(bcrypt.MinCost),
		s.clock,
	), jwtService
}

func (s *engineSuite) TestRegisterAndLogin() {
	ctx := context.Background()
	auth, jwtService := s.newAuth()
	b := builder.NewUserBuilder().WithEmail("reader@example.com")

	registered, err := auth.Register(ctx, nil, b.BuildRegisterRequest())
	s.Require().NoError(err)
	s.Equal("reader@example.com", registered.Email)
	s.Equal(string(user.RoleGeneralUser), registered.Role)
	s.True(registered.IsActive)

	s.clock.Add(time.Minute)
	result, err := auth.Login(ctx, commands.LoginRequest{Email: b.Email, Password: b.Password})
	s.Require().NoError(err)
	s.Equal(registered.ID, result.UserID)
	s.Equal(user.RoleGeneralUser, result.Role)

	claims, err := jwtService.ValidateToken(result.AccessToken)
	s.Require().NoError(err)
	s.Equal(registered.ID, claims.UserID)

	current, err := queries.NewUserQueries(docstore.NewUserReadStore(s.db)).GetCurrentUser(ctx, registered.ID)
	s.Require().NoError(err)
	s.Require().NotNil(current.LastLogin)
	s.Equal(testStart.Add(time.Minute), *current.LastLogin)
}

func (s *engineSuite) TestRegisterRejections() {
	ctx := context.Background()
	auth, _ := s.newAuth()

	_, err := auth.Register(ctx, nil, builder.NewUserBuilder().WithEmail("taken@example.com").BuildRegisterRequest())
	s.Require().NoError(err)

	testCases := []struct {
		name   string
		caller *user.Identity
		req    commands.RegisterRequest
		errIs  error
	}{
		{
			name:  "duplicate email",
			req:   builder.NewUserBuilder().WithEmail("taken@example.com").BuildRegisterRequest(),
			errIs: errs.ErrDuplicateEmail,
		},
		{
			name:  "self sign-up as librarian",
			req:   builder.NewUserBuilder().WithEmail("boss@example.com").AsLibrarian().BuildRegisterRequest(),
			errIs: errs.ErrPrivilegedRoleRequired,
		},
		{
			name:   "instructor creating an instructor",
			caller: &user.Identity{SubjectID: "carol", Role: user.RoleInstructor},
			req:    builder.NewUserBuilder().WithEmail("ta@example.com").AsInstructor().BuildRegisterRequest(),
			errIs:  errs.ErrPrivilegedRoleRequired,
		},
		{
			name:  "short password",
			req:   builder.NewUserBuilder().WithEmail("short@example.com").WithPassword("short").BuildRegisterRequest(),
			errIs: errs.ErrInvalidInput,
		},
		{
			name:  "unknown role",
			req:   builder.NewUserBuilder().WithEmail("odd@example.com").WithRole("admin").BuildRegisterRequest(),
			errIs: errs.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := auth.Register(ctx, tc.caller, tc.req)
			s.Require().Error(err)
			s.True(errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
		})
	}

	s.Run("a librarian may create elevated accounts", func() {
		view, err := auth.Register(ctx, &s.librarian,
			builder.NewUserBuilder().WithEmail("prof@example.com").AsInstructor().BuildRegisterRequest())
		s.Require().NoError(err)
		s.Equal(string(user.RoleInstructor), view.Role)
	})
}

func (s *engineSuite) TestLoginFailures() {
	ctx := context.Background()
	auth, _ := s.newAuth()
	b := builder.NewUserBuilder().WithEmail("login@example.com")
	_, err := auth.Register(ctx, nil, b.BuildRegisterRequest())
	s.Require().NoError(err)

	testCases := []struct {
		name string
		req  commands.LoginRequest
	}{
		{name: "wrong password", req: commands.LoginRequest{Email: b.Email, Password: "wrong-password"}},
		{name: "unknown email", req: commands.LoginRequest{Email: "nobody@example.com", Password: b.Password}},
		{name: "malformed email", req: commands.LoginRequest{Email: "not-an-email", Password: b.Password}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := auth.Login(ctx, tc.req)
			s.ErrorIs(err, commands.ErrInvalidCredentials)
		})
	}
}
