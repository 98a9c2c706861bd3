package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Preference order when picking the cover image from the catalog payload.
var coverImageSizes = []string{"extraLarge", "large", "medium", "small", "thumbnail"}

// googleBooksCatalog implements BookCatalog against a Google-Books-shaped
// volumes endpoint. Lookup failures of any kind (unreachable catalog,
// malformed payload, upstream error status) degrade to
// ErrBookNotFoundInCatalog so that the add-by-isbn flow never surfaces
// upstream outages to the client. A real outage is therefore not
// distinguishable from a genuine miss.
type googleBooksCatalog struct {
	logger  *zap.Logger
	config  *CatalogConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewGoogleBooksCatalog provides a rate limited catalog client.
func NewGoogleBooksCatalog(logger *zap.Logger, config *CatalogConfig) BookCatalog {
	return &googleBooksCatalog{
		logger: logger,
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(
			rate.Limit(config.RequestsPerSecond), 1,
		),
	}
}

// volumesResponse maps the subset of the catalog payload we consume.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	Description   string            `json:"description"`
	Categories    []string          `json:"categories"`
	PageCount     int               `json:"pageCount"`
	ImageLinks    map[string]string `json:"imageLinks"`
	PublishedDate string            `json:"publishedDate"`
	Publisher     string            `json:"publisher"`
	Language      string            `json:"language"`
}

// FetchByISBN issues a single lookup by ISBN against the catalog and maps
// the first matching volume into a book record.
func (gc *googleBooksCatalog) FetchByISBN(ctx context.Context, isbn string) (Book, error) {
	var book Book
	if err := gc.limiter.Wait(ctx); err != nil {
		return book, err
	}

	lookupURL := fmt.Sprintf("%s/volumes?q=%s", gc.config.BaseURL, url.QueryEscape("isbn:"+isbn))
	if gc.config.APIKey != "" {
		lookupURL += "&key=" + url.QueryEscape(gc.config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return book, err
	}

	resp, err := gc.client.Do(req)
	if err != nil {
		gc.logger.Warn("catalog: lookup request failed", zap.String("book.isbn", isbn), zap.Error(err))
		return book, ErrBookNotFoundInCatalog
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		gc.logger.Warn("catalog: lookup returned non-ok status",
			zap.String("book.isbn", isbn),
			zap.Int("status", resp.StatusCode),
		)
		return book, ErrBookNotFoundInCatalog
	}

	var payload volumesResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		gc.logger.Warn("catalog: failed to decode lookup response", zap.String("book.isbn", isbn), zap.Error(err))
		return book, ErrBookNotFoundInCatalog
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return book, ErrBookNotFoundInCatalog
	}

	return mapVolumeInfo(payload.Items[0].VolumeInfo, isbn), nil
}

// mapVolumeInfo shapes a catalog volume into the internal book schema.
// Missing fields stay at their zero values.
func mapVolumeInfo(info volumeInfo, isbn string) Book {
	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}
	return Book{
		ISBN:          isbn,
		Title:         info.Title,
		Authors:       authors,
		Description:   info.Description,
		Categories:    info.Categories,
		PageCount:     info.PageCount,
		CoverImage:    bestCoverImage(info.ImageLinks),
		PublishedDate: info.PublishedDate,
		Publisher:     info.Publisher,
		Language:      info.Language,
	}
}

// bestCoverImage returns the highest resolution image available.
func bestCoverImage(links map[string]string) string {
	for _, size := range coverImageSizes {
		if link, ok := links[size]; ok && link != "" {
			return link
		}
	}
	return ""
}
