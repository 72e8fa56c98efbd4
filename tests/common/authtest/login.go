//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"library-circulation/internal/handler/dto/request"
	"library-circulation/internal/handler/dto/response"
	"library-circulation/internal/pkg/cookie"
	"library-circulation/tests/common/dbtest"
	"library-circulation/tests/common/httptest"

	"github.com/stretchr/testify/require"
)

// LoginUser logs in through the API and returns the access token. The token in
// the body and the one in the cookie must be the same credential.
func LoginUser(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")

	var body response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
	require.NotEmpty(t, body.AccessToken, "login response carries no token")

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "login did not set the access cookie")
	require.Equal(t, body.AccessToken, accessCookie.Value)

	return body.AccessToken
}

// CreateAndLogin seeds an account with role and logs it in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router http.Handler, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.TestPassword)
}

func LogoutUser(t *testing.T, router http.Handler, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
