package main

import (
	"context"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRedisDockerContainer(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Fatalf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("redis", "7.0.10-alpine", nil)
	if err != nil {
		t.Fatalf("Failed to start redis: %+v", err)
	}

	// build address the container is listening on
	addr := net.JoinHostPort("localhost", resource.GetPort("6379/tcp"))

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		return client.Ping(context.Background()).Err()
	})

	if err != nil {
		t.Fatalf("Failed to ping Redis: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return addr, destroyFunc
}

func TestRedisStore(t *testing.T) {
	addr, destroyFunc := startRedisDockerContainer(t)
	defer destroyFunc()
	rs := NewRedisBookStorage(zap.NewNop(), redis.NewClient(&redis.Options{Addr: addr}))
	ctx := context.Background()

	testBook := Book{
		ISBN:          "9780439708180",
		Title:         "Harry Potter and the Sorcerer's Stone",
		Authors:       []string{"J.K. Rowling"},
		Categories:    []string{"Fantasy"},
		ReadingStatus: StatusUnread,
		CreatedAt:     "2023-07-02T00:00:00Z",
		UpdatedAt:     "2023-07-02T00:00:00Z",
	}

	t.Run("Insert Book", func(t *testing.T) {
		// ensures we can insert a new book record.
		err := rs.Insert(ctx, testBook)
		assert.NoError(t, err)
	})

	t.Run("Insert Duplicate Book", func(t *testing.T) {
		// ensures inserting the same isbn twice fails.
		err := rs.Insert(ctx, testBook)
		assert.Equal(t, ErrBookAlreadyExists, err)
	})

	t.Run("Get Existent Book", func(t *testing.T) {
		// ensures we can fetch specific book.
		book, err := rs.GetOne(ctx, testBook.ISBN)
		assert.NoError(t, err)
		assert.Equal(t, testBook, book)
	})

	t.Run("Get NonExistent Book", func(t *testing.T) {
		// ensures fetching non-existent book fails.
		book, err := rs.GetOne(ctx, "9780132350884")
		assert.Equal(t, ErrBookNotFound, err)
		assert.Equal(t, Book{}, book)
	})

	t.Run("Update Book", func(t *testing.T) {
		// ensures only the set fields are rewritten.
		status := StatusRead
		book, err := rs.UpdateReadingStatus(ctx, testBook.ISBN, status)
		assert.NoError(t, err)
		assert.Equal(t, StatusRead, book.ReadingStatus)
		assert.Equal(t, testBook.Title, book.Title)

		_, err = rs.Update(ctx, "9780132350884", BookUpdate{ReadingStatus: &status})
		assert.Equal(t, ErrBookNotFound, err)
	})

	t.Run("Search Books", func(t *testing.T) {
		// ensures the client side matcher and counts work over the hash.
		require.NoError(t, rs.Insert(ctx, Book{
			ISBN:          "9780132350884",
			Title:         "Clean Code",
			Authors:       []string{"Robert C. Martin"},
			Categories:    []string{"Computers"},
			ReadingStatus: StatusInProgress,
		}))

		books, err := rs.Search(ctx, BookFilter{Author: "rowling"}, PageRequest{Limit: 10})
		assert.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, testBook.ISBN, books[0].ISBN)

		count, err := rs.SearchCount(ctx, BookFilter{Status: StatusInProgress})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		total, err := rs.CountAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("Statistics", func(t *testing.T) {
		stats, err := rs.Statistics(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(1), stats.Read)
		assert.Equal(t, int64(1), stats.InProgress)
	})

	t.Run("Delete Existent Book", func(t *testing.T) {
		// ensures deleting existent book succeed.
		err := rs.Delete(ctx, testBook.ISBN)
		assert.NoError(t, err)
		_, err = rs.GetOne(ctx, testBook.ISBN)
		assert.Equal(t, ErrBookNotFound, err)
	})

	t.Run("Delete NonExistent Book", func(t *testing.T) {
		// ensures deleting non-existent book fails.
		err := rs.Delete(ctx, testBook.ISBN)
		assert.Equal(t, ErrBookNotFound, err)
	})
}
