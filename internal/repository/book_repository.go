package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookstore/internal/model"
)

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Delete(ctx context.Context, id uint) (int64, error)
	CreateIfAbsent(ctx context.Context, book *model.Book) (bool, error)
	// WithTransaction runs fn against a repository bound to a single
	// database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookRepository) error) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository builds a GORM-backed repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	// Omit associations so a preloaded Buyer is never written back.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Preload("Buyer").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDForUpdate finds a book by ID with a row-level lock, so the
// purchase flow cannot race a concurrent sale of the same book.
func (r *bookRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// byAuthor scopes a query to an exact, case-insensitive author match, so
// "tolkien" and "TOLKIEN" select the same rows.
func byAuthor(author string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(author) = LOWER(?)", author)
	}
}

// FindByAuthor matches the author field case-insensitively and exactly.
func (r *bookRepository) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Preload("Buyer").
		Scopes(byAuthor(author)).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Preload("Buyer").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Delete removes a book by id and reports how many rows were affected.
func (r *bookRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	return res.RowsAffected, res.Error
}

// CreateIfAbsent inserts the book unless one with the same title and author
// already exists. Reports whether a row was created. Used by seeding.
func (r *bookRepository) CreateIfAbsent(ctx context.Context, book *model.Book) (bool, error) {
	var existing model.Book
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", book.Title, book.Author).
		First(&existing).Error
	if err == nil {
		*book = existing
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return false, err
	}
	return true, nil
}

// WithTransaction executes a function within a database transaction.
func (r *bookRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
