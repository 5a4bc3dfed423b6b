package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readinglog/internal/entities"
	"github.com/mrlokans/readinglog/internal/share"
)

type mockResolver struct {
	ids    []uint
	reason share.Reason
}

func (m *mockResolver) Resolve(token string) ([]uint, share.Reason, error) {
	return m.ids, m.reason, nil
}

type mockFetcher struct {
	books []entities.Book
}

func (m *mockFetcher) FetchByIDs(ids []uint) ([]entities.Book, error) {
	return m.books, nil
}

func newSharedRouter(resolver *mockResolver, fetcher *mockFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/shared", NewSharedViewController(resolver, fetcher).View)
	return router
}

func TestSharedViewSuccess(t *testing.T) {
	resolver := &mockResolver{ids: []uint{1}}
	fetcher := &mockFetcher{books: []entities.Book{
		{ID: 1, Title: "Dune", Author: strPtr("F. Herbert"), ReadOn: "2024-01-01", Rating: "5"},
	}}
	router := newSharedRouter(resolver, fetcher)

	req, _ := http.NewRequest("GET", "/shared?share=abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
		Books []struct {
			Title     string `json:"title"`
			AmazonURL string `json:"amazon_url"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Dune", body.Books[0].Title)
	assert.Contains(t, body.Books[0].AmazonURL, "amazon.co.jp")
	assert.Contains(t, body.Books[0].AmazonURL, "Dune")
}

func TestSharedViewAcceptsTokenParam(t *testing.T) {
	router := newSharedRouter(&mockResolver{ids: []uint{}}, &mockFetcher{books: []entities.Book{}})

	req, _ := http.NewRequest("GET", "/shared?token=abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSharedViewMissingToken(t *testing.T) {
	router := newSharedRouter(&mockResolver{}, &mockFetcher{})

	req, _ := http.NewRequest("GET", "/shared", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSharedViewFailureReasons(t *testing.T) {
	cases := []struct {
		reason share.Reason
		status int
	}{
		{share.ReasonNotFound, http.StatusNotFound},
		{share.ReasonRevoked, http.StatusForbidden},
		{share.ReasonExpired, http.StatusGone},
	}

	for _, tc := range cases {
		router := newSharedRouter(&mockResolver{reason: tc.reason}, &mockFetcher{})

		req, _ := http.NewRequest("GET", "/shared?share=abc123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code, "reason %q", tc.reason)
	}
}

func TestSharedViewEmptyShareSet(t *testing.T) {
	router := newSharedRouter(&mockResolver{ids: []uint{}}, &mockFetcher{books: []entities.Book{}})

	req, _ := http.NewRequest("GET", "/shared?share=abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
}
