// Package cache holds a read-through copy of the full book list.
//
// The original tool kept this list in mutable per-session state; here it
// is an explicit object owned by the HTTP layer and invalidated after
// every mutating repository call. The share read path bypasses it.
package cache

import (
	"sync"

	"github.com/mrlokans/readinglog/internal/entities"
)

// Loader fetches the full book list from storage.
type Loader func() ([]entities.Book, error)

// BookList is a read-through cache over the books table.
type BookList struct {
	mu     sync.Mutex
	load   Loader
	books  []entities.Book
	loaded bool
}

// NewBookList creates a cache backed by the given loader.
func NewBookList(load Loader) *BookList {
	return &BookList{load: load}
}

// Get returns the cached list, loading it on first access or after an
// invalidation. Callers must not mutate the returned slice.
func (c *BookList) Get() ([]entities.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		books, err := c.load()
		if err != nil {
			return nil, err
		}
		c.books = books
		c.loaded = true
	}
	return c.books, nil
}

// Invalidate drops the cached list so the next Get reloads from storage.
// Call after every insert or delete.
func (c *BookList) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = nil
	c.loaded = false
}
