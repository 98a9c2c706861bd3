package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBooks() []Book {
	return []Book{
		{
			ISBN:          "9780439708180",
			Title:         "Harry Potter and the Sorcerer's Stone",
			Authors:       []string{"J.K. Rowling"},
			Description:   "A young wizard discovers his heritage.",
			Categories:    []string{"Fantasy", "Young Adult"},
			ReadingStatus: StatusRead,
		},
		{
			ISBN:          "9780132350884",
			Title:         "Clean Code",
			Authors:       []string{"Robert C. Martin"},
			Description:   "A handbook of agile software craftsmanship.",
			Categories:    []string{"Computers"},
			ReadingStatus: StatusInProgress,
		},
		{
			ISBN:        "9780134190440",
			Title:       "The Go Programming Language",
			Authors:     []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
			Description: "The authoritative resource to writing clear and idiomatic Go.",
			Categories:  []string{"Computers"},
		},
	}
}

// TestBookFilterMatches covers the in-memory matcher shared by the
// embedded stores.
func TestBookFilterMatches(t *testing.T) {
	books := sampleBooks()

	t.Run("zero filter matches nothing", func(t *testing.T) {
		f := BookFilter{}
		assert.True(t, f.IsZero())
		for _, b := range books {
			assert.False(t, f.Matches(b))
		}
	})

	t.Run("query matches title case insensitive", func(t *testing.T) {
		f := BookFilter{Query: "clean"}
		assert.True(t, f.Matches(books[1]))
		assert.False(t, f.Matches(books[0]))
	})

	t.Run("query matches authors and description", func(t *testing.T) {
		assert.True(t, BookFilter{Query: "kernighan"}.Matches(books[2]))
		assert.True(t, BookFilter{Query: "wizard"}.Matches(books[0]))
	})

	t.Run("criteria intersect", func(t *testing.T) {
		f := BookFilter{Author: "martin", Category: "computers"}
		assert.True(t, f.Matches(books[1]))

		f = BookFilter{Author: "rowling", Category: "computers"}
		for _, b := range books {
			assert.False(t, f.Matches(b))
		}
	})

	t.Run("status matches exactly with unread fallback", func(t *testing.T) {
		f := BookFilter{Status: StatusUnread}
		assert.True(t, f.Matches(books[2]), "missing status counts as unread")
		assert.False(t, f.Matches(books[0]))
		assert.False(t, f.Matches(books[1]))
	})
}

// TestEffectiveStatus ensures invalid or missing stored values fold to unread.
func TestEffectiveStatus(t *testing.T) {
	assert.Equal(t, StatusRead, Book{ReadingStatus: StatusRead}.EffectiveStatus())
	assert.Equal(t, StatusUnread, Book{}.EffectiveStatus())
	assert.Equal(t, StatusUnread, Book{ReadingStatus: "finished"}.EffectiveStatus())
}

// TestParseReadingStatus accepts only the three known statuses.
func TestParseReadingStatus(t *testing.T) {
	for _, valid := range []string{"read", "unread", "in_progress"} {
		st, err := ParseReadingStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, ReadingStatus(valid), st)
	}
	_, err := ParseReadingStatus("reading")
	assert.ErrorIs(t, err, ErrInvalidReadingStatus)
	_, err = ParseReadingStatus("")
	assert.ErrorIs(t, err, ErrInvalidReadingStatus)
}

// TestPageRequestNormalize clamps the window to sane values.
func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        PageRequest
		wantLimit int64
		wantSkip  int64
	}{
		{"defaults", PageRequest{}, DefaultPageLimit, 0},
		{"negative values", PageRequest{Limit: -5, Skip: -3}, DefaultPageLimit, 0},
		{"above max", PageRequest{Limit: 500, Skip: 10}, DefaultPageLimit, 10},
		{"slightly above max", PageRequest{Limit: 150, Skip: 0}, DefaultPageLimit, 0},
		{"in range", PageRequest{Limit: 25, Skip: 75}, 25, 75},
		{"at max", PageRequest{Limit: MaxPageLimit, Skip: 0}, MaxPageLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.Equal(t, tc.wantLimit, got.Limit)
			assert.Equal(t, tc.wantSkip, got.Skip)
		})
	}
}

// TestNewPagination checks the derived paging metadata.
func TestNewPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPagination(PageRequest{Limit: 50, Skip: 50}, 50, 120)
		assert.Equal(t, int64(2), p.Page)
		assert.Equal(t, int64(3), p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("first page", func(t *testing.T) {
		p := NewPagination(PageRequest{Limit: 50, Skip: 0}, 50, 120)
		assert.Equal(t, int64(1), p.Page)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPagination(PageRequest{Limit: 50, Skip: 100}, 20, 120)
		assert.Equal(t, int64(3), p.Page)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty collection", func(t *testing.T) {
		p := NewPagination(PageRequest{Limit: 50, Skip: 0}, 0, 0)
		assert.Equal(t, int64(1), p.Page)
		assert.Equal(t, int64(0), p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})
}

// TestSortAndPaginateBooks ensures stable ordering and window slicing
// used by the scanning stores.
func TestSortAndPaginateBooks(t *testing.T) {
	books := sampleBooks()
	SortBooks(books)
	assert.Equal(t, "Clean Code", books[0].Title)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", books[1].Title)
	assert.Equal(t, "The Go Programming Language", books[2].Title)

	page := PaginateBooks(books, PageRequest{Limit: 2, Skip: 1})
	assert.Len(t, page, 2)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", page[0].Title)

	assert.Empty(t, PaginateBooks(books, PageRequest{Limit: 10, Skip: 5}))
}

// TestNewReadingStatistics checks counts and rounded percentages.
func TestNewReadingStatistics(t *testing.T) {
	stats := NewReadingStatistics(1, 2, 0)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Read)
	assert.Equal(t, int64(2), stats.Unread)
	assert.Equal(t, int64(0), stats.InProgress)
	assert.Equal(t, 33.33, stats.ReadingPercentage)
	assert.Equal(t, 0.0, stats.ProgressPercentage)

	empty := NewReadingStatistics(0, 0, 0)
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, 0.0, empty.ReadingPercentage)
}

// TestBookUpdateApplyTo ensures only set fields are overwritten.
func TestBookUpdateApplyTo(t *testing.T) {
	book := sampleBooks()[1]
	title := "Clean Code, 2nd Edition"
	status := StatusRead
	update := BookUpdate{Title: &title, ReadingStatus: &status}
	assert.False(t, update.IsEmpty())

	update.ApplyTo(&book)
	assert.Equal(t, "Clean Code, 2nd Edition", book.Title)
	assert.Equal(t, StatusRead, book.ReadingStatus)
	assert.Equal(t, []string{"Robert C. Martin"}, book.Authors)
	assert.Equal(t, "9780132350884", book.ISBN)

	var empty BookUpdate
	assert.True(t, empty.IsEmpty())
}
