//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"library-circulation/internal/domain/user"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/pkg/cookie"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"
	"library-circulation/tests/common/builder"
	"library-circulation/tests/common/httptest"
	"library-circulation/tests/common/testutil"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type testCaseAuth struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *handlerSuite) TestLogin() {
	url := "/api/auth/login"

	reqBody := builder.NewAuthBuilder().BuildDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()
	expectedToken := "test-jwt-token"
	loginResult := &commands.LoginResult{
		UserID:      returnUser.ID,
		Role:        user.RoleGeneralUser,
		AccessToken: expectedToken,
		ExpiresIn:   time.Hour,
		User:        returnUser,
	}

	s.Run("success: returns token and user, sets the cookie", func() {
		s.authCommands.EXPECT().Login(gomock.Any(), builder.NewAuthBuilder().BuildCommand()).
			Return(loginResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedToken, response.AccessToken)
		s.Equal(returnUser.Email, response.User.Email)
		s.Equal(returnUser.ID.String(), response.User.ID)

		accessCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(accessCookie)
		s.Equal(expectedToken, accessCookie.Value)
		s.True(accessCookie.HttpOnly)
		s.Equal(int(time.Hour.Seconds()), accessCookie.MaxAge)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseAuth{
			{name: "invalid email", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
			{name: "email of wrong type", mutate: testutil.Field("email", 42), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  commands.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "user inactive",
				commandsError:  queries.ErrUserInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "user inactive",
			},
			{
				name:           "store unavailable",
				commandsError:  errs.Mark(errors.New("connection refused"), errs.ErrStoreUnavailable),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Service temporarily unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("token signing failed"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.authCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
			})
		}
	})
}

func (s *handlerSuite) TestRegister() {
	url := "/api/auth/register"

	s.Run("success: self sign-up passes no caller", func() {
		b := builder.NewUserBuilder()
		s.authCommands.EXPECT().Register(gomock.Any(), gomock.Nil(), b.BuildRegisterRequest()).
			Return(b.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildRegisterDTO(), "")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(b.Email, response.Email)
		s.Equal(string(user.RoleGeneralUser), response.Role)
	})

	s.Run("success: a librarian token is passed through as the caller", func() {
		librarian, token := s.login(user.RoleLibrarian)
		b := builder.NewUserBuilder().WithEmail("prof@example.com").AsInstructor()
		s.authCommands.EXPECT().Register(gomock.Any(), &librarian, b.BuildRegisterRequest()).
			Return(b.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildRegisterDTO(), token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("an invalid token is ignored on register", func() {
		b := builder.NewUserBuilder()
		s.authCommands.EXPECT().Register(gomock.Any(), gomock.Nil(), gomock.Any()).
			Return(b.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildRegisterDTO(), "not-a-jwt")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		reqBody := builder.NewUserBuilder().BuildRegisterDTO()
		testCases := []testCaseAuth{
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
			{name: "name too long", mutate: testutil.Field("name", strings.Repeat("n", 101)), expectCode: http.StatusBadRequest},
			{name: "unknown role", mutate: testutil.Field("role", "admin"), expectCode: http.StatusBadRequest, expectInBody: "oneof"},
			{name: "missing email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest, expectInBody: "required"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Request validation failed")
				if tc.expectInBody != "" {
					s.Contains(rec.Body.String(), tc.expectInBody)
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "elevated role without librarian", commandsError: errs.ErrPrivilegedRoleRequired, expectedStatus: http.StatusForbidden},
			{name: "duplicate email", commandsError: errs.ErrDuplicateEmail, expectedStatus: http.StatusConflict},
			{name: "domain validation", commandsError: user.ErrInvalidName, expectedStatus: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.authCommands.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, builder.NewUserBuilder().BuildRegisterDTO(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.commandsError.Error())
			})
		}
	})
}

func (s *handlerSuite) TestLogout() {
	_, token := s.login(user.RoleGeneralUser)

	s.Run("success: returns 204 and clears the cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, token)
		s.Equal(http.StatusNoContent, rec.Code)

		accessCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(accessCookie)
		s.Empty(accessCookie.Value)
		s.Negative(accessCookie.MaxAge)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

func (s *handlerSuite) TestMe() {
	url := "/api/auth/me"
	returnUser := builder.NewUserBuilder().BuildReadModel()
	token := s.jwt.GenerateToken(s.T(), returnUser.ID, user.RoleGeneralUser)

	s.Run("success: returns current user info", func() {
		s.userQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response["email"])
		s.Equal(true, response["isActive"])
	})

	s.Run("error: 401 for an expired token", func() {
		expired := s.jwt.CreateExpiredToken(s.T(), uuid.New(), user.RoleGeneralUser)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "user not found",
				queriesError:   queries.ErrUserNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "user not found",
			},
			{
				name:           "user inactive",
				queriesError:   queries.ErrUserInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "user inactive",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.userQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
