package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// boltBookStorage is the embedded store used for local development and
// tests. Records live in a single bucket keyed by normalized ISBN; every
// filter and aggregate runs over a cursor scan with the shared matcher.
type boltBookStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient sets up the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookStorage provides an instance of bolt-based book storage.
func NewBoltBookStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) BookStorage {
	return &boltBookStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book storage.
func (bs *boltBookStorage) Close() error {
	return bs.client.Close()
}

// Exists verifies the presence of a record with the given isbn.
func (bs *boltBookStorage) Exists(_ context.Context, isbn string) (bool, error) {
	var found bool
	err := bs.client.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(isbn)) != nil
		return nil
	})
	return found, err
}

// Insert stores a new book record. The key check and the put share one
// write transaction so duplicate inserts are rejected atomically.
func (bs *boltBookStorage) Insert(_ context.Context, book Book) error {
	if !book.ReadingStatus.IsValid() {
		book.ReadingStatus = StatusUnread
	}
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		if bucket.Get([]byte(book.ISBN)) != nil {
			return ErrBookAlreadyExists
		}
		return bucket.Put([]byte(book.ISBN), bookBytes)
	})
}

// GetOne retrieves a book record based on its isbn.
func (bs *boltBookStorage) GetOne(_ context.Context, isbn string) (Book, error) {
	var book Book
	tx, err := bs.client.Begin(false)
	if err != nil {
		return book, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(isbn))
	if result == nil {
		return book, ErrBookNotFound
	}
	err = json.Unmarshal(result, &book)
	return book, err
}

// Update rewrites the record with the non-nil fields of the partial update.
func (bs *boltBookStorage) Update(_ context.Context, isbn string, update BookUpdate) (Book, error) {
	var book Book
	err := bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		result := bucket.Get([]byte(isbn))
		if result == nil {
			return ErrBookNotFound
		}
		if err := json.Unmarshal(result, &book); err != nil {
			return err
		}
		update.ApplyTo(&book)
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(isbn), bookBytes)
	})
	return book, err
}

// Delete removes a book record based on its isbn.
func (bs *boltBookStorage) Delete(_ context.Context, isbn string) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		if bucket.Get([]byte(isbn)) == nil {
			return ErrBookNotFound
		}
		return bucket.Delete([]byte(isbn))
	})
}

// GetAll retrieves one page of the whole collection ordered by title.
func (bs *boltBookStorage) GetAll(ctx context.Context, page PageRequest) ([]Book, error) {
	books, err := bs.scan(ctx)
	if err != nil {
		return nil, err
	}
	SortBooks(books)
	return PaginateBooks(books, page), nil
}

// CountAll returns the total number of stored books.
func (bs *boltBookStorage) CountAll(_ context.Context) (int64, error) {
	var count int64
	err := bs.client.View(func(tx *bolt.Tx) error {
		count = int64(tx.Bucket([]byte(bs.config.BucketName)).Stats().KeyN)
		return nil
	})
	return count, err
}

// Search retrieves one page of the records matching the filter.
func (bs *boltBookStorage) Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error) {
	if filter.IsZero() {
		return []Book{}, nil
	}
	books, err := bs.scan(ctx)
	if err != nil {
		return nil, err
	}
	matched := []Book{}
	for _, book := range books {
		if filter.Matches(book) {
			matched = append(matched, book)
		}
	}
	SortBooks(matched)
	return PaginateBooks(matched, page), nil
}

// SearchCount returns the number of records matching the filter.
func (bs *boltBookStorage) SearchCount(ctx context.Context, filter BookFilter) (int64, error) {
	if filter.IsZero() {
		return 0, nil
	}
	books, err := bs.scan(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, book := range books {
		if filter.Matches(book) {
			count++
		}
	}
	return count, nil
}

// UpdateReadingStatus moves a book to another reading status.
func (bs *boltBookStorage) UpdateReadingStatus(ctx context.Context, isbn string, status ReadingStatus) (Book, error) {
	if !status.IsValid() {
		return Book{}, ErrInvalidReadingStatus
	}
	return bs.Update(ctx, isbn, BookUpdate{ReadingStatus: &status})
}

// Statistics aggregates per-status counts over the whole bucket.
func (bs *boltBookStorage) Statistics(ctx context.Context) (ReadingStatistics, error) {
	books, err := bs.scan(ctx)
	if err != nil {
		return ReadingStatistics{}, err
	}
	var read, unread, inProgress int64
	for _, book := range books {
		switch book.EffectiveStatus() {
		case StatusRead:
			read++
		case StatusInProgress:
			inProgress++
		default:
			unread++
		}
	}
	return NewReadingStatistics(read, unread, inProgress), nil
}

// scan retrieves every stored record from the bucket.
func (bs *boltBookStorage) scan(_ context.Context) ([]Book, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = json.Unmarshal(v, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
