package api

import (
	"net/http"

	reqdto "library-circulation/internal/handler/dto/request"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	circulationCommands commands.CirculationCommands
	checkoutQueries     queries.CheckoutQueries
}

func NewCheckoutHandler(circulationCommands commands.CirculationCommands, checkoutQueries queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{
		circulationCommands: circulationCommands,
		checkoutQueries:     checkoutQueries,
	}
}

// @Summary Check out copies
// @Description Takes quantity copies of a book for the caller. All or nothing.
// @Tags checkouts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutRequest true "Checkout"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkouts [post]
func (h *CheckoutHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.circulationCommands.Checkout(c.Request.Context(), identity, req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/checkouts/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromCheckoutView(view))
}

// @Summary Return a checkout
// @Description The owner or a librarian returns every copy of the checkout.
// @Tags checkouts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkouts/{id}/return [put]
func (h *CheckoutHandler) Return(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseCheckoutID(c)
	if !ok {
		return
	}

	view, err := h.circulationCommands.Return(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

// @Summary List checkouts
// @Description General users only see their own checkouts whatever the filter says.
// @Tags checkouts
// @Security BearerAuth
// @Produce json
// @Param bookId query string false "Only this book"
// @Param subjectId query string false "Only this borrower"
// @Param active query bool false "Only checkouts not yet returned"
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.CheckoutListResponse
// @Failure 400 {object} httperr.Response
// @Router /checkouts [get]
func (h *CheckoutHandler) List(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var q reqdto.ListCheckoutsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	views, next, err := h.checkoutQueries.List(c.Request.Context(), identity, q.Filter(), reqdto.Cursor(q.After), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutList(views, next))
}

// @Summary Get a checkout
// @Tags checkouts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /checkouts/{id} [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseCheckoutID(c)
	if !ok {
		return
	}

	view, err := h.checkoutQueries.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

func parseCheckoutID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Mark(errs.Wrap(err, "invalid checkout id"), errs.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}
