package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readinglog/internal/cache"
	"github.com/mrlokans/readinglog/internal/database/books"
	"github.com/mrlokans/readinglog/internal/entities"
)

type mockBookStore struct {
	books       []entities.Book
	insertedID  uint
	insertErr   error
	deletedID   uint
	deleteCalls int
}

func (m *mockBookStore) ListAll() ([]entities.Book, error) {
	return m.books, nil
}

func (m *mockBookStore) Insert(title, author, readOn string, rating int) (uint, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.insertedID = uint(len(m.books) + 1)
	return m.insertedID, nil
}

func (m *mockBookStore) Delete(id uint) error {
	m.deletedID = id
	m.deleteCalls++
	return nil
}

func strPtr(s string) *string {
	return &s
}

func newBooksRouter(store *mockBookStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewBooksController(store, cache.NewBookList(store.ListAll), nil)

	router := gin.New()
	router.GET("/api/books", controller.ListBooks)
	router.POST("/api/books", controller.CreateBook)
	router.DELETE("/api/books/:id", controller.DeleteBook)
	return router
}

func TestListBooks(t *testing.T) {
	store := &mockBookStore{books: []entities.Book{
		{ID: 1, Title: "Dune", Author: strPtr("F. Herbert"), Rating: "5"},
		{ID: 2, Title: "Walden", Author: strPtr("H. D. Thoreau"), Rating: "3"},
	}}
	router := newBooksRouter(store)

	req, _ := http.NewRequest("GET", "/api/books", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Count int             `json:"count"`
		Books []entities.Book `json:"books"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("expected count 2, got %d", body.Count)
	}
}

func TestListBooksWithRatingFilter(t *testing.T) {
	store := &mockBookStore{books: []entities.Book{
		{ID: 1, Title: "Dune", Rating: "5"},
		{ID: 2, Title: "Walden", Rating: "3"},
		{ID: 3, Title: "Notes", Rating: "unknown"},
	}}
	router := newBooksRouter(store)

	req, _ := http.NewRequest("GET", "/api/books?rating_min=4&rating_max=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Rating 3 excluded, unparsable rating passes through
	if body.Count != 2 {
		t.Errorf("expected count 2, got %d", body.Count)
	}
}

func TestListBooksRejectsBadFilterParams(t *testing.T) {
	router := newBooksRouter(&mockBookStore{})

	for _, query := range []string{
		"rating_min=five",
		"from=01/02/2024",
		"to=tomorrow",
	} {
		req, _ := http.NewRequest("GET", "/api/books?"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected status 400, got %d", query, w.Code)
		}
	}
}

func TestCreateBook(t *testing.T) {
	store := &mockBookStore{}
	router := newBooksRouter(store)

	payload, _ := json.Marshal(map[string]any{
		"title": "Dune", "author": "F. Herbert", "read_on": "2024-01-01", "rating": 5,
	})
	req, _ := http.NewRequest("POST", "/api/books", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if store.insertedID == 0 {
		t.Error("expected insert to be called")
	}
}

func TestCreateBookEmptyTitle(t *testing.T) {
	store := &mockBookStore{insertErr: books.ErrEmptyTitle}
	router := newBooksRouter(store)

	payload, _ := json.Marshal(map[string]any{"title": "   ", "rating": 3})
	req, _ := http.NewRequest("POST", "/api/books", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestDeleteBook(t *testing.T) {
	store := &mockBookStore{}
	router := newBooksRouter(store)

	req, _ := http.NewRequest("DELETE", "/api/books/123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if store.deletedID != 123 {
		t.Errorf("expected book ID 123 to be deleted, got %d", store.deletedID)
	}
}

func TestDeleteBookInvalidID(t *testing.T) {
	store := &mockBookStore{}
	router := newBooksRouter(store)

	req, _ := http.NewRequest("DELETE", "/api/books/notanumber", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if store.deleteCalls != 0 {
		t.Error("expected delete not to be called")
	}
}
