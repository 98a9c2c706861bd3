package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a ready to use store over a temporary file.
func newTestBoltStore(t *testing.T) *boltBookStorage {
	t.Helper()
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	require.NoError(t, err)
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
	}

	client, err := GetBoltDBClient(testConfig)
	require.NoError(t, err, "failed in creating a test bolt store")

	store := &boltBookStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(testConfig.BoltDB.FilePath)
	})
	return store
}

// TestBoltStore_InsertAndGet covers insertion with defaulted status,
// duplicate rejection and retrieval.
func TestBoltStore_InsertAndGet(t *testing.T) {
	bs := newTestBoltStore(t)
	ctx := context.Background()

	book := Book{ISBN: "9780439708180", Title: "Harry Potter and the Sorcerer's Stone"}
	require.NoError(t, bs.Insert(ctx, book))

	t.Run("duplicate isbn rejected", func(t *testing.T) {
		err := bs.Insert(ctx, book)
		assert.ErrorIs(t, err, ErrBookAlreadyExists)
	})

	t.Run("status defaults to unread", func(t *testing.T) {
		got, err := bs.GetOne(ctx, "9780439708180")
		assert.NoError(t, err)
		assert.Equal(t, StatusUnread, got.ReadingStatus)
		assert.Equal(t, "Harry Potter and the Sorcerer's Stone", got.Title)
	})

	t.Run("exists", func(t *testing.T) {
		found, err := bs.Exists(ctx, "9780439708180")
		assert.NoError(t, err)
		assert.True(t, found)
		found, err = bs.Exists(ctx, "9780132350884")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("unknown isbn", func(t *testing.T) {
		_, err := bs.GetOne(ctx, "9780132350884")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

// TestBoltStore_Update covers the partial rewrite semantics.
func TestBoltStore_Update(t *testing.T) {
	bs := newTestBoltStore(t)
	ctx := context.Background()
	require.NoError(t, bs.Insert(ctx, Book{
		ISBN:    "9780132350884",
		Title:   "Clean Code",
		Authors: []string{"Robert C. Martin"},
	}))

	title := "Clean Code, 2nd Edition"
	got, err := bs.Update(ctx, "9780132350884", BookUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "Clean Code, 2nd Edition", got.Title)
	assert.Equal(t, []string{"Robert C. Martin"}, got.Authors)

	t.Run("unknown isbn", func(t *testing.T) {
		_, err := bs.Update(ctx, "9780439708180", BookUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("reading status shortcut", func(t *testing.T) {
		got, err := bs.UpdateReadingStatus(ctx, "9780132350884", StatusRead)
		assert.NoError(t, err)
		assert.Equal(t, StatusRead, got.ReadingStatus)

		_, err = bs.UpdateReadingStatus(ctx, "9780132350884", "finished")
		assert.ErrorIs(t, err, ErrInvalidReadingStatus)
	})
}

// TestBoltStore_Delete covers removal including the missing record case.
func TestBoltStore_Delete(t *testing.T) {
	bs := newTestBoltStore(t)
	ctx := context.Background()
	require.NoError(t, bs.Insert(ctx, Book{ISBN: "9780439708180", Title: "Harry Potter"}))

	assert.NoError(t, bs.Delete(ctx, "9780439708180"))
	assert.ErrorIs(t, bs.Delete(ctx, "9780439708180"), ErrBookNotFound)
}

// TestBoltStore_ListingAndSearch covers the scan based listing, filtering
// and counting paths.
func TestBoltStore_ListingAndSearch(t *testing.T) {
	bs := newTestBoltStore(t)
	ctx := context.Background()
	for _, b := range sampleBooks() {
		require.NoError(t, bs.Insert(ctx, b))
	}

	t.Run("get all sorted by title", func(t *testing.T) {
		books, err := bs.GetAll(ctx, PageRequest{Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, books, 3)
		assert.Equal(t, "Clean Code", books[0].Title)
	})

	t.Run("pagination window", func(t *testing.T) {
		books, err := bs.GetAll(ctx, PageRequest{Limit: 2, Skip: 2})
		assert.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("count all", func(t *testing.T) {
		count, err := bs.CountAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("zero filter matches nothing", func(t *testing.T) {
		books, err := bs.Search(ctx, BookFilter{}, PageRequest{Limit: 10})
		assert.NoError(t, err)
		assert.Empty(t, books)
		count, err := bs.SearchCount(ctx, BookFilter{})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("search by category", func(t *testing.T) {
		books, err := bs.Search(ctx, BookFilter{Category: "computers"}, PageRequest{Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, books, 2)
		count, err := bs.SearchCount(ctx, BookFilter{Category: "computers"})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("statistics fold missing status to unread", func(t *testing.T) {
		stats, err := bs.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(1), stats.Read)
		assert.Equal(t, int64(1), stats.InProgress)
		assert.Equal(t, int64(1), stats.Unread)
	})
}
