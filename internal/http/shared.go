package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readinglog/internal/entities"
	"github.com/mrlokans/readinglog/internal/share"
)

// BookFetcher loads the books for a resolved share set.
type BookFetcher interface {
	FetchByIDs(ids []uint) ([]entities.Book, error)
}

// ShareResolver maps a token to its book set or a failure reason.
type ShareResolver interface {
	Resolve(token string) ([]uint, share.Reason, error)
}

// SharedViewController serves the read-only shared view. It is reachable
// without authentication; the token is the only credential.
type SharedViewController struct {
	service ShareResolver
	fetcher BookFetcher
}

func NewSharedViewController(service ShareResolver, fetcher BookFetcher) *SharedViewController {
	return &SharedViewController{service: service, fetcher: fetcher}
}

// sharedBook is a book as exposed on the shared view: no internal
// timestamps, plus a store link the viewer can follow.
type sharedBook struct {
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	ReadOn    string `json:"read_on,omitempty"`
	Rating    string `json:"rating,omitempty"`
	AmazonURL string `json:"amazon_url"`
}

// View resolves a token and renders the books it was created for.
// GET /shared?share=<token> (also accepts token=<token>)
func (svc *SharedViewController) View(c *gin.Context) {
	token := c.Query(share.URLQueryKey)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		respondBadRequest(c, "share token is missing")
		return
	}

	ids, reason, err := svc.service.Resolve(token)
	if err != nil {
		respondInternalError(c, err, "resolve share")
		return
	}

	switch reason {
	case share.ReasonNotFound:
		respondError(c, http.StatusNotFound, "share link does not exist")
		return
	case share.ReasonRevoked:
		respondError(c, http.StatusForbidden, "this share link has been revoked")
		return
	case share.ReasonExpired:
		respondError(c, http.StatusGone, "this share link has expired")
		return
	}

	books, err := svc.fetcher.FetchByIDs(ids)
	if err != nil {
		respondInternalError(c, err, "fetch shared books")
		return
	}

	out := make([]sharedBook, 0, len(books))
	for _, b := range books {
		out = append(out, sharedBook{
			Title:     b.Title,
			Author:    b.AuthorName(),
			ReadOn:    b.ReadOn,
			Rating:    b.Rating,
			AmazonURL: amazonSearchURL(b.Title, b.AuthorName()),
		})
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": out, "count": len(out)})
}

// amazonSearchURL builds a search link for books that carry no store URL
// of their own.
func amazonSearchURL(title, author string) string {
	parts := make([]string, 0, 2)
	if title != "" {
		parts = append(parts, title)
	}
	if author != "" {
		parts = append(parts, author)
	}
	q := strings.Join(parts, " ")
	return "https://www.amazon.co.jp/s?k=" + url.QueryEscape(q)
}
