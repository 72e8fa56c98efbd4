//go:build unit

package api_test

import (
	"net/http"
	"strings"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/user"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"
	"library-circulation/tests/common/builder"
	"library-circulation/tests/common/httptest"
	"library-circulation/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

func (s *handlerSuite) TestListBooks() {
	_, token := s.login(user.RoleGeneralUser)
	first := builder.NewBookBuilder().WithISBN("9780000000001").BuildView()
	second := builder.NewBookBuilder().WithISBN("9780000000002").WithInventory(3, 1).BuildView()

	s.Run("success: returns items and the next cursor", func() {
		next := &queries.Cursor{After: "next-page"}
		s.bookQueries.EXPECT().List(gomock.Any(), gomock.Nil(), 2).
			Return([]*queries.BookView{first, second}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books?limit=2", nil, token)

		var response resdto.BookListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 2)
		s.Equal("9780000000002", response.Items[1].ISBN)
		s.Equal(1, response.Items[1].AvailableCopies)
		s.Require().NotNil(response.NextCursor)
		s.Equal("next-page", *response.NextCursor)
	})

	s.Run("the cursor is passed through", func() {
		s.bookQueries.EXPECT().List(gomock.Any(), &queries.Cursor{After: "abc"}, 0).
			Return([]*queries.BookView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books?after=abc", nil, token)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"items":[]}`, rec.Body.String())
	})

	s.Run("error: 400 for a malformed cursor", func() {
		s.bookQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "bad base64")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books?after=%25%25", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *handlerSuite) TestGetBook() {
	_, token := s.login(user.RoleInstructor)
	b := builder.NewBookBuilder()

	s.Run("success", func() {
		s.bookQueries.EXPECT().GetByID(gomock.Any(), b.ISBN).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/"+b.ISBN, nil, token)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		want := resdto.FromBookView(b.BuildView())
		if diff := cmp.Diff(want, &response); diff != "" {
			s.T().Errorf("book response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("error: 404", func() {
		s.bookQueries.EXPECT().GetByID(gomock.Any(), "9789999999999").Return(nil, errs.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/9789999999999", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "book not found")
	})
}

func (s *handlerSuite) TestCreateBook() {
	url := "/api/books"
	librarian, token := s.login(user.RoleLibrarian)
	b := builder.NewBookBuilder()

	s.Run("success: 201 with Location", func() {
		s.catalogCommands.EXPECT().CreateBook(gomock.Any(), librarian, b.BuildCreateRequest()).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), token)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("/api/books/"+b.ISBN, rec.Header().Get("Location"))
		s.Equal(b.Total, response.TotalCopies)
		s.Equal(b.Total, response.AvailableCopies)
	})

	s.Run("availableCopies is forwarded for the usecase to check", func() {
		var got commands.CreateBookRequest
		s.catalogCommands.EXPECT().CreateBook(gomock.Any(), librarian, gomock.Any()).
			DoAndReturn(func(_ any, _ user.Identity, req commands.CreateBookRequest) (*queries.BookView, error) {
				got = req
				return nil, book.ErrInvalidCopies
			}).Times(1)

		body := testutil.DtoMap(s.T(), b.BuildDTO(), testutil.Field("availableCopies", 2))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		s.Require().NotNil(got.AvailableCopies)
		s.Equal(2, *got.AvailableCopies)
	})

	s.Run("error: 403 for non-librarians before reaching the handler", func() {
		for _, role := range []user.Role{user.RoleGeneralUser, user.RoleInstructor} {
			_, other := s.login(role)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), other)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
		}
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate testutil.Mutation
		}{
			{name: "missing isbn", mutate: testutil.Field("isbn", nil)},
			{name: "isbn with whitespace", mutate: testutil.Field("isbn", "978 0134190440")},
			{name: "isbn too long", mutate: testutil.Field("isbn", strings.Repeat("9", 21))},
			{name: "missing title", mutate: testutil.Field("title", nil)},
			{name: "title too long", mutate: testutil.Field("title", strings.Repeat("t", 301))},
			{name: "no authors", mutate: testutil.Field("authors", []string{})},
			{name: "blank author", mutate: testutil.Field("authors", []string{""})},
			{name: "negative total", mutate: testutil.Field("totalCopies", -1)},
			{name: "tag too long", mutate: testutil.Field("tags", []string{strings.Repeat("x", 51)})},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), b.BuildDTO(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Request validation failed")
			})
		}
	})

	s.Run("error: 409 for a duplicate isbn", func() {
		s.catalogCommands.EXPECT().CreateBook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrDuplicateISBN).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
		s.Contains(rec.Body.String(), `"code":"conflict"`)
	})
}

func (s *handlerSuite) TestUpdateBook() {
	librarian, token := s.login(user.RoleLibrarian)
	b := builder.NewBookBuilder()
	url := "/api/books/" + b.ISBN

	s.Run("success: only supplied fields are set", func() {
		title := "Second Edition"
		total := 8
		s.catalogCommands.EXPECT().UpdateBook(gomock.Any(), librarian, b.ISBN,
			commands.UpdateBookRequest{Title: &title, TotalCopies: &total}).
			Return(b.WithTitle(title).WithInventory(8, 8).BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"title": title, "totalCopies": total}, token)

		var response resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(title, response.Title)
		s.Equal(8, response.TotalCopies)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "unknown book", commandsError: errs.ErrBookNotFound, expectedStatus: http.StatusNotFound, expectedCode: "not_found"},
			{name: "shrink below outstanding", commandsError: errs.ErrShrinkBelowOutstanding, expectedStatus: http.StatusConflict, expectedCode: "conflict"},
			{name: "invalid metadata", commandsError: book.ErrInvalidTitle, expectedStatus: http.StatusBadRequest, expectedCode: "invalid_input"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.catalogCommands.EXPECT().UpdateBook(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"totalCopies": 1}, token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.commandsError.Error())
				s.Contains(rec.Body.String(), `"code":"`+tc.expectedCode+`"`)
			})
		}
	})

	s.Run("error: 400 for a negative total before reaching the usecase", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"totalCopies": -1}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Request validation failed")
	})
}

func (s *handlerSuite) TestDeleteBook() {
	librarian, token := s.login(user.RoleLibrarian)
	isbn := "9780134190440"

	s.Run("success: 204", func() {
		s.catalogCommands.EXPECT().DeleteBook(gomock.Any(), librarian, isbn).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/books/"+isbn, nil, token)
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 409 while checkouts are active", func() {
		s.catalogCommands.EXPECT().DeleteBook(gomock.Any(), librarian, isbn).Return(errs.ErrBookHasActiveCheckouts).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/books/"+isbn, nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "active checkouts")
	})
}
