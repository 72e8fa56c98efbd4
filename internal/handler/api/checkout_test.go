//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/checkout"
	"library-circulation/internal/domain/user"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/tests/common/builder"
	"library-circulation/tests/common/httptest"
	"library-circulation/tests/common/testutil"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func (s *handlerSuite) TestCreateCheckout() {
	url := "/api/checkouts"
	reader, token := s.login(user.RoleGeneralUser)

	s.Run("success: 201 with the ledger entry", func() {
		b := builder.NewCheckoutBuilder().WithSubjectID(reader.SubjectID).WithQuantity(2).WithNotes("reading group")
		s.circulationCommands.EXPECT().Checkout(gomock.Any(), reader, b.BuildRequest()).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), token)

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(b.ID.String(), response.ID)
		s.Equal(b.BookID, response.BookID)
		s.Equal(reader.SubjectID, response.SubjectID)
		s.Equal(2, response.Quantity)
		s.Nil(response.DateIn)
		s.Equal("/api/checkouts/"+b.ID.String(), rec.Header().Get("Location"))
		s.NotContains(rec.Body.String(), "dateIn")
	})

	s.Run("success: omitted quantity checks out a single copy", func() {
		b := builder.NewCheckoutBuilder().WithSubjectID(reader.SubjectID)
		want := b.BuildRequest()
		want.Quantity = 1
		s.circulationCommands.EXPECT().Checkout(gomock.Any(), reader, want).
			Return(b.BuildView(), nil).Times(1)

		body := testutil.DtoMap(s.T(), b.WithQuantity(3).BuildDTO(), testutil.Field("quantity", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, token)

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		reqBody := builder.NewCheckoutBuilder().BuildDTO()
		testCases := []struct {
			name   string
			mutate testutil.Mutation
		}{
			{name: "missing bookId", mutate: testutil.Field("bookId", nil)},
			{name: "bookId with whitespace", mutate: testutil.Field("bookId", "978 01")},
			{name: "zero quantity", mutate: testutil.Field("quantity", 0)},
			{name: "negative quantity", mutate: testutil.Field("quantity", -2)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Request validation failed")
			})
		}
	})

	s.Run("error: maps outcome kinds to distinct statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "negative quantity", commandsError: checkout.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest, expectedCode: "invalid_input"},
			{name: "unknown book", commandsError: errs.ErrBookNotFound, expectedStatus: http.StatusNotFound, expectedCode: "not_found"},
			{name: "not enough copies", commandsError: book.ErrInsufficientStock, expectedStatus: http.StatusConflict, expectedCode: "insufficient_inventory"},
			{name: "store unavailable", commandsError: errs.Mark(errors.New("too many retries"), errs.ErrStoreUnavailable), expectedStatus: http.StatusServiceUnavailable, expectedCode: "store_unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.circulationCommands.EXPECT().Checkout(gomock.Any(), reader, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, builder.NewCheckoutBuilder().BuildDTO(), token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
				s.Contains(rec.Body.String(), `"code":"`+tc.expectedCode+`"`)
			})
		}
	})

	s.Run("error: 503 carries Retry-After", func() {
		s.circulationCommands.EXPECT().Checkout(gomock.Any(), reader, gomock.Any()).
			Return(nil, errs.Mark(errors.New("pool closed"), errs.ErrStoreUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, builder.NewCheckoutBuilder().BuildDTO(), token)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
		s.NotContains(rec.Body.String(), "pool closed")
	})
}

func (s *handlerSuite) TestReturnCheckout() {
	reader, token := s.login(user.RoleGeneralUser)
	id := uuid.New()
	url := "/api/checkouts/" + id.String() + "/return"

	s.Run("success: 200 with dateIn", func() {
		returnedAt := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
		view := builder.NewCheckoutBuilder().With(func(b *builder.CheckoutBuilder) { b.ID = id }).
			WithSubjectID(reader.SubjectID).AsReturned(returnedAt).BuildView()
		s.circulationCommands.EXPECT().Return(gomock.Any(), reader, id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, token)

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.DateIn)
		s.True(returnedAt.Equal(*response.DateIn))
	})

	s.Run("error: maps outcome kinds to distinct statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "someone else's checkout", commandsError: errs.ErrNotCheckoutOwner, expectedStatus: http.StatusForbidden, expectedCode: "forbidden"},
			{name: "unknown checkout", commandsError: errs.ErrCheckoutNotFound, expectedStatus: http.StatusNotFound, expectedCode: "not_found"},
			{name: "already returned", commandsError: checkout.ErrAlreadyReturned, expectedStatus: http.StatusConflict, expectedCode: "already_returned"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.circulationCommands.EXPECT().Return(gomock.Any(), reader, id).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.commandsError.Error())
				s.Contains(rec.Body.String(), `"code":"`+tc.expectedCode+`"`)
			})
		}
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/checkouts/not-a-uuid/return", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid checkout id")
	})
}

func (s *handlerSuite) TestListCheckouts() {
	reader, token := s.login(user.RoleGeneralUser)

	s.Run("query parameters become the filter", func() {
		bookID := "9780134190440"
		subjectID := "someone-else"
		want := queries.ListCheckoutsFilter{BookID: &bookID, SubjectID: &subjectID, ActiveOnly: true}
		rows := []*queries.CheckoutView{
			builder.NewCheckoutBuilder().WithSubjectID(reader.SubjectID).BuildView(),
		}
		s.checkoutQueries.EXPECT().List(gomock.Any(), reader, want, &queries.Cursor{After: "c1"}, 10).
			Return(rows, &queries.Cursor{After: "c2"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/checkouts?bookId=9780134190440&subjectId=someone-else&active=true&limit=10&after=c1", nil, token)

		var response resdto.CheckoutListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Require().NotNil(response.NextCursor)
		s.Equal("c2", *response.NextCursor)
	})

	s.Run("no parameters means no filter", func() {
		s.checkoutQueries.EXPECT().List(gomock.Any(), reader, queries.ListCheckoutsFilter{}, gomock.Nil(), 0).
			Return([]*queries.CheckoutView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/checkouts", nil, token)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"items":[]}`, rec.Body.String())
	})

	s.Run("error: 400 for a malformed active flag", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/checkouts?active=maybe", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *handlerSuite) TestGetCheckout() {
	instructor, token := s.login(user.RoleInstructor)
	view := builder.NewCheckoutBuilder().BuildView()

	s.Run("success", func() {
		s.checkoutQueries.EXPECT().GetByID(gomock.Any(), instructor, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/checkouts/"+view.ID.String(), nil, token)

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.SubjectID, response.SubjectID)
	})

	s.Run("error: 403 for someone else's checkout", func() {
		s.checkoutQueries.EXPECT().GetByID(gomock.Any(), instructor, view.ID).Return(nil, errs.ErrNotCheckoutOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/checkouts/"+view.ID.String(), nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another subject")
	})
}

func (s *handlerSuite) TestCheckoutRequiresAuth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/checkouts", builder.NewCheckoutBuilder().BuildDTO(), "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
}
