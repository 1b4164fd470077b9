package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookstore/internal/cache"
	apperrors "bookstore/internal/errors"
	"bookstore/internal/model"
	"bookstore/internal/repository"
)

const bookCacheTTL = 5 * time.Minute

// BookInput carries the fields accepted when creating a book. Sale state is
// never taken from input: every book starts available.
type BookInput struct {
	Title  string
	Author string
	Price  decimal.Decimal
}

// BookUpdate carries the optional fields of a book update. Sale state is
// deliberately absent: it changes only through Purchase.
type BookUpdate struct {
	Title  *string
	Author *string
	Price  *decimal.Decimal
}

// BookService exposes book domain operations.
type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id uint) (*model.Book, error)
	CreateBook(ctx context.Context, input BookInput) (*model.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	UpdateBook(ctx context.Context, id uint, upd BookUpdate) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
	Purchase(ctx context.Context, buyerID, bookID uint) (string, error)
	SeedBooks(ctx context.Context, books []model.Book) (int, error)
}

type bookService struct {
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewBookService builds a BookService over the book and user repositories.
func NewBookService(bookRepo repository.BookRepository, userRepo repository.UserRepository, cache *cache.Client) BookService {
	return &bookService{bookRepo: bookRepo, userRepo: userRepo, cache: cache}
}

func (s *bookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	key := cache.BookKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, key, payload, bookCacheTTL)
	}
	return book, nil
}

func (s *bookService) CreateBook(ctx context.Context, input BookInput) (*model.Book, error) {
	book := &model.Book{
		Title:  input.Title,
		Author: input.Author,
		Price:  input.Price,
		IsSold: false,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (s *bookService) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	books, err := s.bookRepo.FindByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// UpdateBook merges title, author and price into an existing book. IsSold and
// the buyer cannot be touched here; the purchase flow owns the sale state.
func (s *bookService) UpdateBook(ctx context.Context, id uint, upd BookUpdate) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, err
	}

	if upd.Title != nil {
		book.Title = *upd.Title
	}
	if upd.Author != nil {
		book.Author = *upd.Author
	}
	if upd.Price != nil {
		book.Price = *upd.Price
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.BookKey(id))
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	affected, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrBookNotFound
	}
	_ = s.cache.Delete(ctx, cache.BookKey(id))
	return nil
}

// Purchase marks a book sold and assigns its buyer, inside a single
// transaction with a row lock on the book so two concurrent purchases of
// the same book cannot both succeed.
func (s *bookService) Purchase(ctx context.Context, buyerID, bookID uint) (string, error) {
	var confirmation string

	err := s.bookRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookRepository) error {
		book, err := txRepo.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookUnavailable
			}
			return err
		}
		if book.IsSold {
			return apperrors.ErrBookUnavailable
		}

		buyer, err := s.userRepo.FindByID(ctx, buyerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookUnavailable
			}
			return err
		}

		book.IsSold = true
		book.BuyerID = &buyer.ID
		if err := txRepo.Update(ctx, book); err != nil {
			return fmt.Errorf("persist purchase: %w", err)
		}

		confirmation = fmt.Sprintf("El libro %s ha sido comprado por el usuario con ID %d.", book.Title, buyer.ID)
		return nil
	})
	if err != nil {
		return "", err
	}

	_ = s.cache.Delete(ctx, cache.BookKey(bookID))
	return confirmation, nil
}

// SeedBooks inserts the given books, skipping any title/author pair that is
// already present. Returns how many rows were created.
func (s *bookService) SeedBooks(ctx context.Context, books []model.Book) (int, error) {
	created := 0
	for i := range books {
		ok, err := s.bookRepo.CreateIfAbsent(ctx, &books[i])
		if err != nil {
			return created, fmt.Errorf("seed book %q: %w", books[i].Title, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
