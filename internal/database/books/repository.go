// Package books provides database operations for the reading log.
//
// This package implements the BookStore interface defined in
// internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.Insert("Dune", "F. Herbert", "2024-01-01", 5)
package books

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/entities"
)

// ErrEmptyTitle is returned when an insert is attempted with a title that
// is empty after trimming whitespace.
var ErrEmptyTitle = errors.New("title must not be empty")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll retrieves every book ordered by id ascending.
func (r *Repository) ListAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// Insert adds a book and returns its assigned id.
//
// The title is required; a blank author is stored as NULL. The rating is
// constrained to 1-5 by the input control and not re-validated here.
// created_at is the local time at insert, second precision.
func (r *Repository) Insert(title, author, readOn string, rating int) (uint, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}

	book := entities.Book{
		Title:     title,
		ReadOn:    readOn,
		Rating:    strconv.Itoa(rating),
		CreatedAt: time.Now().Format(entities.CreatedAtLayout),
	}
	if a := strings.TrimSpace(author); a != "" {
		book.Author = &a
	}

	err := database.WithRetry(func() error {
		return r.db.Create(&book).Error
	})
	if err != nil {
		return 0, err
	}
	return book.ID, nil
}

// Delete removes a book by id. Deleting an unknown id is a silent no-op.
func (r *Repository) Delete(id uint) error {
	return database.WithRetry(func() error {
		return r.db.Delete(&entities.Book{}, id).Error
	})
}

// FetchByIDs retrieves the books for a share set. An empty id list
// short-circuits without touching storage. Ids that no longer exist are
// simply absent from the result, which is how dangling share items for
// deleted books are handled.
func (r *Repository) FetchByIDs(ids []uint) ([]entities.Book, error) {
	if len(ids) == 0 {
		return []entities.Book{}, nil
	}
	var books []entities.Book
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&books).Error
	return books, err
}
