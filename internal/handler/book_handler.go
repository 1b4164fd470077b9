package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "bookstore/internal/errors"
	"bookstore/internal/service"
)

// BookHandler bundles HTTP handlers for the books resource.
type BookHandler struct {
	svc service.BookService
}

// NewBookHandler creates a handler layer.
func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// CreateBookRequest represents a book creation request. Sale state is not
// accepted: new books are always available.
type CreateBookRequest struct {
	Title  string          `json:"title" validate:"required"`
	Author string          `json:"author" validate:"required"`
	Price  decimal.Decimal `json:"price" validate:"required"`
}

// UpdateBookRequest represents a partial book update. IsSold and the buyer
// are not updatable here; only the purchase endpoint changes sale state.
type UpdateBookRequest struct {
	Title  *string          `json:"title"`
	Author *string          `json:"author"`
	Price  *decimal.Decimal `json:"price"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateBook godoc
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param request body CreateBookRequest true "Book payload"
// @Success 201 {object} model.Book
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.svc.CreateBook(c.Request().Context(), service.BookInput{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating book")
	}
	return c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.svc.ListBooks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching books")
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		if he, ok := apperrors.MapError(err); ok {
			return echo.NewHTTPError(he.StatusCode, he.Message)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching books")
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary Update book fields
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body UpdateBookRequest true "Fields to update"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}
	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	book, err := h.svc.UpdateBook(c.Request().Context(), id, service.BookUpdate{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	})
	if err != nil {
		if he, ok := apperrors.MapError(err); ok {
			return echo.NewHTTPError(he.StatusCode, he.Message)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating book")
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}
	if err := h.svc.DeleteBook(c.Request().Context(), id); err != nil {
		if he, ok := apperrors.MapError(err); ok {
			return echo.NewHTTPError(he.StatusCode, he.Message)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting book")
	}
	return c.NoContent(http.StatusNoContent)
}

// BooksByAuthor godoc
// @Summary List books by author, case-insensitive exact match
// @Tags books
// @Produce json
// @Param author path string true "Author name"
// @Success 200 {array} model.Book
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/author/{author} [get]
func (h *BookHandler) BooksByAuthor(c echo.Context) error {
	books, err := h.svc.FindByAuthor(c.Request().Context(), c.Param("author"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching books by author")
	}
	return c.JSON(http.StatusOK, books)
}

// BuyBook godoc
// @Summary Purchase a book for a user
// @Tags books
// @Produce json
// @Param bookId path int true "Book ID"
// @Param userId path int true "Buyer user ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{bookId}/buy/{userId} [post]
func (h *BookHandler) BuyBook(c echo.Context) error {
	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found or already sold")
	}
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found or already sold")
	}

	confirmation, err := h.svc.Purchase(c.Request().Context(), userID, bookID)
	if err != nil {
		if he, ok := apperrors.MapError(err); ok {
			return echo.NewHTTPError(he.StatusCode, he.Message)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error buying book")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: confirmation})
}
