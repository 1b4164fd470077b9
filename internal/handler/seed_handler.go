package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bookstore/internal/model"
	"bookstore/internal/service"
)

// SeedHandler exposes an idempotent endpoint that loads practice data.
type SeedHandler struct {
	bookService service.BookService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(bookService service.BookService) *SeedHandler {
	return &SeedHandler{bookService: bookService}
}

// SeedBooksResponse represents the seed response.
type SeedBooksResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// PracticeCatalog is the fixed set of books seeded for local practice.
func PracticeCatalog() []model.Book {
	return []model.Book{
		{Title: "El Hobbit", Author: "J.R.R. Tolkien", Price: decimal.NewFromFloat(14.99)},
		{Title: "La Comunidad del Anillo", Author: "J.R.R. Tolkien", Price: decimal.NewFromFloat(19.99)},
		{Title: "Cien años de soledad", Author: "Gabriel García Márquez", Price: decimal.NewFromFloat(17.50)},
		{Title: "Don Quijote de la Mancha", Author: "Miguel de Cervantes", Price: decimal.NewFromFloat(12.00)},
		{Title: "Rayuela", Author: "Julio Cortázar", Price: decimal.NewFromFloat(15.25)},
	}
}

// SeedBooks godoc
// @Summary Seed the practice book catalog
// @Tags seed
// @Produce json
// @Success 200 {object} SeedBooksResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/seed/books [get]
func (h *SeedHandler) SeedBooks(c echo.Context) error {
	count, err := h.bookService.SeedBooks(c.Request().Context(), PracticeCatalog())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error seeding books")
	}
	return c.JSON(http.StatusOK, SeedBooksResponse{
		Message: "Books seeded successfully",
		Count:   count,
	})
}
