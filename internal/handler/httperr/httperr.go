package httperr

import (
	"library-circulation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated  = errs.New("unauthenticated")
	ErrInsufficientRole = errs.Mark(errs.New("insufficient role"), errs.ErrForbidden)
	ErrBadRequest       = errs.Mark(errs.New("malformed request"), errs.ErrInvalidInput)
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError writes the public envelope and records err on the context
// so the error middleware can log the cause of 5xx responses.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
