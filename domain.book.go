package main

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Reading status tokens persisted on the wire and in the stores.
const (
	StatusRead       ReadingStatus = "read"
	StatusUnread     ReadingStatus = "unread"
	StatusInProgress ReadingStatus = "in_progress"
)

var (
	ErrBookNotFound          = errors.New("book not found")
	ErrBookAlreadyExists     = errors.New("book already exists")
	ErrBookNotFoundInCatalog = errors.New("book not found in catalog")
	ErrInvalidISBN           = errors.New("invalid isbn")
	ErrInvalidReadingStatus  = errors.New("invalid reading status")
)

// ReadingStatus is the tri-state progress flag attached to each book.
type ReadingStatus string

// IsValid tells if the status is one of the three allowed tokens.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case StatusRead, StatusUnread, StatusInProgress:
		return true
	}
	return false
}

// ParseReadingStatus converts a wire token into a ReadingStatus.
func ParseReadingStatus(raw string) (ReadingStatus, error) {
	s := ReadingStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidReadingStatus
	}
	return s, nil
}

// Book represents a book record keyed by its normalized ISBN.
type Book struct {
	ISBN          string        `json:"isbn" bson:"isbn"`
	Title         string        `json:"title" bson:"title"`
	Authors       []string      `json:"authors" bson:"authors"`
	Description   string        `json:"description,omitempty" bson:"description,omitempty"`
	Categories    []string      `json:"categories,omitempty" bson:"categories,omitempty"`
	PageCount     int           `json:"page_count,omitempty" bson:"page_count,omitempty"`
	CoverImage    string        `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	PublishedDate string        `json:"published_date,omitempty" bson:"published_date,omitempty"`
	Publisher     string        `json:"publisher,omitempty" bson:"publisher,omitempty"`
	Language      string        `json:"language,omitempty" bson:"language,omitempty"`
	ReadingStatus ReadingStatus `json:"reading_status" bson:"reading_status,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt     string        `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// EffectiveStatus maps records persisted without a reading status to unread.
func (b Book) EffectiveStatus() ReadingStatus {
	if !b.ReadingStatus.IsValid() {
		return StatusUnread
	}
	return b.ReadingStatus
}

// BookUpdate carries a partial update. Nil fields are left untouched.
// The isbn field is accepted on the wire but never applied: the key is
// immutable.
type BookUpdate struct {
	ISBN          *string        `json:"isbn,omitempty"`
	Title         *string        `json:"title,omitempty"`
	Authors       *[]string      `json:"authors,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Categories    *[]string      `json:"categories,omitempty"`
	PageCount     *int           `json:"page_count,omitempty"`
	CoverImage    *string        `json:"cover_image,omitempty"`
	PublishedDate *string        `json:"published_date,omitempty"`
	Publisher     *string        `json:"publisher,omitempty"`
	Language      *string        `json:"language,omitempty"`
	ReadingStatus *ReadingStatus `json:"reading_status,omitempty"`

	// UpdatedAt is stamped by the service, never decoded from the wire.
	UpdatedAt *string `json:"-"`
}

// IsEmpty tells if the update carries no applicable field.
func (u *BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Authors == nil && u.Description == nil &&
		u.Categories == nil && u.PageCount == nil && u.CoverImage == nil &&
		u.PublishedDate == nil && u.Publisher == nil && u.Language == nil &&
		u.ReadingStatus == nil
}

// ApplyTo mutates the book in place with the non-nil update fields.
// Used by the embedded stores which rewrite whole records.
func (u *BookUpdate) ApplyTo(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Authors != nil {
		b.Authors = *u.Authors
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.Categories != nil {
		b.Categories = *u.Categories
	}
	if u.PageCount != nil {
		b.PageCount = *u.PageCount
	}
	if u.CoverImage != nil {
		b.CoverImage = *u.CoverImage
	}
	if u.PublishedDate != nil {
		b.PublishedDate = *u.PublishedDate
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.Language != nil {
		b.Language = *u.Language
	}
	if u.ReadingStatus != nil {
		b.ReadingStatus = *u.ReadingStatus
	}
	if u.UpdatedAt != nil {
		b.UpdatedAt = *u.UpdatedAt
	}
}

// BookFilter holds the search criteria. Query is matched against title,
// authors and description (OR). Title, Author and Category each narrow the
// result independently (AND). Status is an exact match.
type BookFilter struct {
	Query    string
	Title    string
	Author   string
	Category string
	Status   ReadingStatus
}

// IsZero tells if no criteria was supplied. A zero filter matches nothing.
func (f BookFilter) IsZero() bool {
	return f.Query == "" && f.Title == "" && f.Author == "" &&
		f.Category == "" && f.Status == ""
}

// Matches applies the filter semantics over an in-memory book record.
// The mongo store builds the equivalent predicate server side; the redis
// and bolt stores scan with this matcher.
func (f BookFilter) Matches(b Book) bool {
	if f.IsZero() {
		return false
	}
	if f.Query != "" {
		ok := containsFold(b.Title, f.Query) || containsFold(b.Description, f.Query)
		for _, a := range b.Authors {
			ok = ok || containsFold(a, f.Query)
		}
		if !ok {
			return false
		}
	}
	if f.Title != "" && !containsFold(b.Title, f.Title) {
		return false
	}
	if f.Author != "" {
		var ok bool
		for _, a := range b.Authors {
			ok = ok || containsFold(a, f.Author)
		}
		if !ok {
			return false
		}
	}
	if f.Category != "" {
		var ok bool
		for _, c := range b.Categories {
			ok = ok || containsFold(c, f.Category)
		}
		if !ok {
			return false
		}
	}
	if f.Status != "" && b.EffectiveStatus() != f.Status {
		return false
	}
	return true
}

// Criteria shapes the filter for the search response echo.
func (f BookFilter) Criteria() *SearchCriteria {
	return &SearchCriteria{
		Query:         f.Query,
		Title:         f.Title,
		Author:        f.Author,
		Category:      f.Category,
		ReadingStatus: string(f.Status),
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortBooks orders records by title then ISBN so that pagination over the
// scanning stores stays stable between calls.
func SortBooks(books []Book) {
	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ISBN < books[j].ISBN
	})
}

// PaginateBooks slices an already sorted result set.
func PaginateBooks(books []Book, page PageRequest) []Book {
	if page.Skip >= int64(len(books)) {
		return []Book{}
	}
	books = books[page.Skip:]
	if int64(len(books)) > page.Limit {
		books = books[:page.Limit]
	}
	return books
}

// ReadingStatistics aggregates per-status counts over the whole collection.
type ReadingStatistics struct {
	Total              int64   `json:"total"`
	Read               int64   `json:"read"`
	Unread             int64   `json:"unread"`
	InProgress         int64   `json:"in_progress"`
	ReadingPercentage  float64 `json:"reading_percentage"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// NewReadingStatistics computes totals and percentages from raw counts.
// Records without a persisted status must already be folded into unread.
func NewReadingStatistics(read, unread, inProgress int64) ReadingStatistics {
	total := read + unread + inProgress
	return ReadingStatistics{
		Total:              total,
		Read:               read,
		Unread:             unread,
		InProgress:         inProgress,
		ReadingPercentage:  percentOf(read, total),
		ProgressPercentage: percentOf(inProgress, total),
	}
}

// BookStorage defines the operations every book store must support.
type BookStorage interface {
	Exists(ctx context.Context, isbn string) (bool, error)
	Insert(ctx context.Context, book Book) error
	GetOne(ctx context.Context, isbn string) (Book, error)
	Update(ctx context.Context, isbn string, update BookUpdate) (Book, error)
	Delete(ctx context.Context, isbn string) error
	GetAll(ctx context.Context, page PageRequest) ([]Book, error)
	CountAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error)
	SearchCount(ctx context.Context, filter BookFilter) (int64, error)
	UpdateReadingStatus(ctx context.Context, isbn string, status ReadingStatus) (Book, error)
	Statistics(ctx context.Context) (ReadingStatistics, error)
}

// BookCatalog is the boundary to the external book metadata provider.
type BookCatalog interface {
	FetchByISBN(ctx context.Context, isbn string) (Book, error)
}
