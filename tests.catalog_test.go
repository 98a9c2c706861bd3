package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCatalog(baseURL string) BookCatalog {
	return NewGoogleBooksCatalog(zap.NewNop(), &CatalogConfig{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		RequestsPerSecond: 100,
	})
}

// TestFetchByISBN ensures the catalog payload is mapped into a book record.
func TestFetchByISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9780439708180", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "Harry Potter and the Sorcerer's Stone",
					"authors": ["J.K. Rowling"],
					"description": "A young wizard discovers his heritage.",
					"categories": ["Fantasy"],
					"pageCount": 309,
					"publishedDate": "1998-10-01",
					"publisher": "Scholastic",
					"language": "en",
					"imageLinks": {
						"thumbnail": "http://books.example/thumb.jpg",
						"large": "http://books.example/large.jpg"
					}
				}
			}]
		}`))
	}))
	defer server.Close()

	catalog := newTestCatalog(server.URL)
	book, err := catalog.FetchByISBN(context.Background(), "9780439708180")
	assert.NoError(t, err)
	assert.Equal(t, "9780439708180", book.ISBN)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", book.Title)
	assert.Equal(t, []string{"J.K. Rowling"}, book.Authors)
	assert.Equal(t, []string{"Fantasy"}, book.Categories)
	assert.Equal(t, 309, book.PageCount)
	assert.Equal(t, "http://books.example/large.jpg", book.CoverImage, "largest available image wins")
	assert.Equal(t, "Scholastic", book.Publisher)
}

// TestFetchByISBN_NotFound maps an empty volumes payload to the miss error.
func TestFetchByISBN_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	catalog := newTestCatalog(server.URL)
	_, err := catalog.FetchByISBN(context.Background(), "9780439708180")
	assert.ErrorIs(t, err, ErrBookNotFoundInCatalog)
}

// TestFetchByISBN_UpstreamFailures ensures every failure mode degrades to
// the miss error instead of surfacing transport details.
func TestFetchByISBN_UpstreamFailures(t *testing.T) {
	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()
		_, err := newTestCatalog(server.URL).FetchByISBN(context.Background(), "9780439708180")
		assert.ErrorIs(t, err, ErrBookNotFoundInCatalog)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not-json`))
		}))
		defer server.Close()
		_, err := newTestCatalog(server.URL).FetchByISBN(context.Background(), "9780439708180")
		assert.ErrorIs(t, err, ErrBookNotFoundInCatalog)
	})

	t.Run("unreachable catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()
		_, err := newTestCatalog(server.URL).FetchByISBN(context.Background(), "9780439708180")
		assert.ErrorIs(t, err, ErrBookNotFoundInCatalog)
	})
}

// TestBestCoverImage checks the size preference order.
func TestBestCoverImage(t *testing.T) {
	assert.Equal(t, "", bestCoverImage(nil))
	assert.Equal(t, "t", bestCoverImage(map[string]string{"thumbnail": "t"}))
	assert.Equal(t, "xl", bestCoverImage(map[string]string{"thumbnail": "t", "extraLarge": "xl"}))
}
