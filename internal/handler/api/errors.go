package api

import (
	"errors"
	"net/http"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/handler/httperr"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorDetail struct {
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

type errorMapping struct {
	kind   error
	status int
	code   string
}

// Checked in order. The first kind err carries decides the response.
var errorMappings = []errorMapping{
	{errs.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden"},
	{errs.ErrNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrInsufficientInventory, http.StatusConflict, "insufficient_inventory"},
	{errs.ErrAlreadyReturned, http.StatusConflict, "already_returned"},
	{errs.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
}

// respondError maps an error from the usecase layer onto the HTTP error body.
func respondError(c *gin.Context, err error) {
	if errs.Is(err, commands.ErrInvalidCredentials) {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		return
	}

	for _, m := range errorMappings {
		if !errs.Is(err, m.kind) {
			continue
		}
		msg := err.Error()
		if errs.IsRetryable(err) {
			c.Header("Retry-After", "1")
			msg = "Service temporarily unavailable"
		}
		httperr.AbortWithError(c, m.status, err, msg, errorDetail{Code: m.code})
		return
	}

	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

// respondBindError reports a request that failed JSON decoding or binding tags.
func respondBindError(c *gin.Context, err error) {
	detail := errorDetail{Code: "invalid_input"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			detail.Fields[fe.Field()] = fe.Tag()
		}
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrInvalidInput), "Request validation failed", detail)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, httperr.ErrBadRequest), "Invalid request format", detail)
}

// requireIdentity aborts with 401 when the route was reached without RequireAuth.
func requireIdentity(c *gin.Context) (user.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthenticated, "User not authenticated", nil)
		return user.Identity{}, false
	}
	return identity, true
}
