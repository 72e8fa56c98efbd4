package api

import (
	"net/http"

	reqdto "library-circulation/internal/handler/dto/request"
	resdto "library-circulation/internal/handler/dto/response"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	catalogCommands commands.CatalogCommands
	bookQueries     queries.BookQueries
}

func NewBookHandler(catalogCommands commands.CatalogCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		catalogCommands: catalogCommands,
		bookQueries:     bookQueries,
	}
}

// @Summary List books
// @Description Books ordered by ISBN with keyset pagination
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.BookListResponse
// @Failure 400 {object} httperr.Response
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	var q reqdto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	views, next, err := h.bookQueries.List(c.Request.Context(), reqdto.Cursor(q.After), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookList(views, next))
}

// @Summary Get a book
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} resdto.BookResponse
// @Failure 404 {object} httperr.Response
// @Router /books/{isbn} [get]
func (h *BookHandler) Get(c *gin.Context) {
	view, err := h.bookQueries.GetByID(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary Create a book
// @Description Librarian only. All copies start on the shelf.
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookRequest true "Book"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.catalogCommands.CreateBook(c.Request.Context(), identity, cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/books/"+view.ISBN)
	c.JSON(http.StatusCreated, resdto.FromBookView(view))
}

// @Summary Update a book
// @Description Librarian only. Changing totalCopies shifts availableCopies by the same amount.
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param isbn path string true "ISBN"
// @Param request body reqdto.UpdateBookRequest true "Fields to change"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /books/{isbn} [put]
func (h *BookHandler) Update(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.catalogCommands.UpdateBook(c.Request.Context(), identity, c.Param("isbn"), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary Delete a book
// @Description Librarian only. Refused while any checkout of the title is active.
// @Tags books
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /books/{isbn} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.catalogCommands.DeleteBook(c.Request.Context(), identity, c.Param("isbn")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
