//go:build unit

package api_test

import (
	"bufio"
	"net/http"
	"strings"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/usecase/shared"
	"library-circulation/tests/common/httptest"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func (s *handlerSuite) TestStreamChanges() {
	reader, token := s.login(user.RoleGeneralUser)

	s.Run("writes one server-sent event per change until the feed closes", func() {
		checkoutID := uuid.New()
		at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		events := make(chan shared.ChangeEvent, 2)
		events <- shared.ChangeEvent{
			Kind:       shared.ChangeCheckoutCreated,
			BookID:     "9780134190440",
			CheckoutID: &checkoutID,
			SubjectID:  reader.SubjectID,
			Quantity:   1,
			Available:  4,
			Total:      5,
			OccurredAt: at,
		}
		events <- shared.ChangeEvent{Kind: shared.ChangeBookUpdated, BookID: "9780134190440", Available: 4, Total: 6, OccurredAt: at}
		close(events)

		s.changeQueries.EXPECT().Subscribe(gomock.Any(), reader).
			Return((<-chan shared.ChangeEvent)(events), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/changes", nil, token)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("text/event-stream", rec.Header().Get("Content-Type"))

		var kinds, data []string
		scanner := bufio.NewScanner(strings.NewReader(rec.Body.String()))
		for scanner.Scan() {
			line := scanner.Text()
			if kind, ok := strings.CutPrefix(line, "event:"); ok {
				kinds = append(kinds, kind)
			}
			if payload, ok := strings.CutPrefix(line, "data:"); ok {
				data = append(data, payload)
			}
		}
		s.Equal([]string{"checkout.created", "book.updated"}, kinds)
		s.Require().Len(data, 2)
		s.JSONEq(`{
			"kind": "checkout.created",
			"bookId": "9780134190440",
			"checkoutId": "`+checkoutID.String()+`",
			"subjectId": "`+reader.SubjectID+`",
			"quantity": 1,
			"available": 4,
			"total": 5,
			"occurredAt": "2026-03-01T09:00:00Z"
		}`, data[0])
		s.Contains(rec.Body.String(), "id:2\n")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/changes", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
