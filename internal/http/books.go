package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readinglog/internal/audit"
	"github.com/mrlokans/readinglog/internal/cache"
	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/database/books"
	"github.com/mrlokans/readinglog/internal/entities"
	"github.com/mrlokans/readinglog/internal/filter"
)

// BookStore defines the repository operations the books controller needs.
type BookStore interface {
	ListAll() ([]entities.Book, error)
	Insert(title, author, readOn string, rating int) (uint, error)
	Delete(id uint) error
}

type BooksController struct {
	store        BookStore
	listCache    *cache.BookList
	auditService *audit.Service
}

func NewBooksController(store BookStore, listCache *cache.BookList, auditService *audit.Service) *BooksController {
	return &BooksController{
		store:        store,
		listCache:    listCache,
		auditService: auditService,
	}
}

// ListBooks returns the log, optionally narrowed by filter query
// parameters:
//
//	title, author           keyword match (case-insensitive substring)
//	rating_min, rating_max  inclusive rating bounds
//	from, to                read-date bounds (enables the date filter)
//
// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	allBooks, err := bc.listCache.Get()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	spec, ok := parseFilterSpec(c)
	if !ok {
		return
	}

	filtered := filter.Apply(allBooks, spec)
	c.IndentedJSON(http.StatusOK, gin.H{"books": filtered, "count": len(filtered)})
}

type createBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ReadOn string `json:"read_on"`
	Rating int    `json:"rating"`
}

// CreateBook adds a book to the log.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	id, err := bc.store.Insert(req.Title, req.Author, req.ReadOn, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrEmptyTitle):
			respondBadRequest(c, "title is required")
		case errors.Is(err, database.ErrStorageUnavailable):
			respondError(c, http.StatusServiceUnavailable, "storage unavailable, try again")
		default:
			respondInternalError(c, err, "create book")
		}
		return
	}

	bc.listCache.Invalidate()
	if bc.auditService != nil {
		if err := bc.auditService.LogBookAdded(id, req.Title); err != nil {
			logAuditFailure(err)
		}
	}

	c.IndentedJSON(http.StatusCreated, gin.H{"id": id, "message": "book added"})
}

// DeleteBook removes a book. Deleting an unknown id succeeds quietly, so
// repeating a delete is harmless.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(id); err != nil {
		if errors.Is(err, database.ErrStorageUnavailable) {
			respondError(c, http.StatusServiceUnavailable, "storage unavailable, try again")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	bc.listCache.Invalidate()
	if bc.auditService != nil {
		if err := bc.auditService.LogBookDeleted(id); err != nil {
			logAuditFailure(err)
		}
	}

	respondSuccess(c, "book deleted")
}

// parseFilterSpec builds a filter.Spec from the request query. Responds
// with 400 and returns false on malformed numeric or date parameters.
func parseFilterSpec(c *gin.Context) (filter.Spec, bool) {
	spec := filter.Spec{
		TitleKeyword:  c.Query("title"),
		AuthorKeyword: c.Query("author"),
		RatingMin:     0,
		RatingMax:     5,
	}

	if raw := c.Query("rating_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondBadRequest(c, "invalid rating_min parameter")
			return filter.Spec{}, false
		}
		spec.RatingMin = v
	}
	if raw := c.Query("rating_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondBadRequest(c, "invalid rating_max parameter")
			return filter.Spec{}, false
		}
		spec.RatingMax = v
	}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBadRequest(c, "invalid from parameter, expected YYYY-MM-DD")
			return filter.Spec{}, false
		}
		spec.UseDateRange = true
		spec.Start = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBadRequest(c, "invalid to parameter, expected YYYY-MM-DD")
			return filter.Spec{}, false
		}
		spec.UseDateRange = true
		spec.End = t
	}

	return spec, true
}
