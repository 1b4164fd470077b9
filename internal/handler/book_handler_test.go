package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "bookstore/internal/errors"
	"bookstore/internal/model"
	"bookstore/internal/service"
)

// MockBookService is a mock implementation of service.BookService.
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, input service.BookInput) (*model.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, id uint, upd service.BookUpdate) (*model.Book, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookService) Purchase(ctx context.Context, buyerID, bookID uint) (string, error) {
	args := m.Called(ctx, buyerID, bookID)
	return args.String(0), args.Error(1)
}

func (m *MockBookService) SeedBooks(ctx context.Context, books []model.Book) (int, error) {
	args := m.Called(ctx, books)
	return args.Int(0), args.Error(1)
}

func TestBookHandler_BuyBook(t *testing.T) {
	tests := []struct {
		name            string
		setupMock       func(*MockBookService)
		expectedStatus  int
		expectedMessage string
		expectedBody    string
	}{
		{
			name: "successful purchase returns confirmation",
			setupMock: func(m *MockBookService) {
				m.On("Purchase", mock.Anything, uint(7), uint(3)).
					Return("El libro El Hobbit ha sido comprado por el usuario con ID 7.", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"El libro El Hobbit ha sido comprado por el usuario con ID 7."}`,
		},
		{
			name: "book missing or already sold",
			setupMock: func(m *MockBookService) {
				m.On("Purchase", mock.Anything, uint(7), uint(3)).
					Return("", apperrors.ErrBookUnavailable)
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Book not found or already sold",
		},
		{
			name: "unexpected error",
			setupMock: func(m *MockBookService) {
				m.On("Purchase", mock.Anything, uint(7), uint(3)).
					Return("", errors.New("connection refused"))
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Error buying book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockBookService)
			tt.setupMock(mockSvc)

			c, rec := newTestContext(http.MethodPost, "/books/3/buy/7", "")
			c.SetParamNames("bookId", "userId")
			c.SetParamValues("3", "7")

			err := NewBookHandler(mockSvc).BuyBook(c)

			if tt.expectedMessage != "" {
				assertHTTPError(t, err, tt.expectedStatus, tt.expectedMessage)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, rec.Code)
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("GetBook", mock.Anything, uint(99)).Return(nil, apperrors.ErrBookNotFound)

	c, _ := newTestContext(http.MethodGet, "/books/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := NewBookHandler(mockSvc).GetBook(c)

	assertHTTPError(t, err, http.StatusNotFound, "Book not found")
	mockSvc.AssertExpectations(t)
}

func TestBookHandler_ListBooks_EmptyArrayBody(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("ListBooks", mock.Anything).Return([]model.Book{}, nil)

	c, rec := newTestContext(http.MethodGet, "/books", "")

	err := NewBookHandler(mockSvc).ListBooks(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestBookHandler_UpdateBook_Errors(t *testing.T) {
	tests := []struct {
		name            string
		setupMock       func(*MockBookService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "missing book",
			setupMock: func(m *MockBookService) {
				m.On("UpdateBook", mock.Anything, uint(99), mock.Anything).
					Return(nil, apperrors.ErrBookNotFound)
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Book not found",
		},
		{
			name: "unexpected error",
			setupMock: func(m *MockBookService) {
				m.On("UpdateBook", mock.Anything, uint(99), mock.Anything).
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Error updating book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockBookService)
			tt.setupMock(mockSvc)

			c, _ := newTestContext(http.MethodPut, "/books/99", `{"title":"Renamed"}`)
			c.SetParamNames("id")
			c.SetParamValues("99")

			err := NewBookHandler(mockSvc).UpdateBook(c)

			assertHTTPError(t, err, tt.expectedStatus, tt.expectedMessage)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestBookHandler_DeleteBook_Errors(t *testing.T) {
	tests := []struct {
		name            string
		setupMock       func(*MockBookService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "missing book",
			setupMock: func(m *MockBookService) {
				m.On("DeleteBook", mock.Anything, uint(99)).Return(apperrors.ErrBookNotFound)
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Book not found",
		},
		{
			name: "unexpected error",
			setupMock: func(m *MockBookService) {
				m.On("DeleteBook", mock.Anything, uint(99)).Return(errors.New("connection refused"))
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Error deleting book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockBookService)
			tt.setupMock(mockSvc)

			c, _ := newTestContext(http.MethodDelete, "/books/99", "")
			c.SetParamNames("id")
			c.SetParamValues("99")

			err := NewBookHandler(mockSvc).DeleteBook(c)

			assertHTTPError(t, err, tt.expectedStatus, tt.expectedMessage)
			mockSvc.AssertExpectations(t)
		})
	}
}
