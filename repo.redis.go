package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HBooks is the hash holding every book record, field = normalized ISBN.
const HBooks string = "books"

type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisBookStorage provides an instance of redis-based book storage.
// Filtering and statistics scan the whole hash client side with the
// shared matcher, which is acceptable at personal-library scale.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client) BookStorage {
	return &redisBookStorage{
		logger: logger,
		client: client,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Exists verifies the presence of a record with the given isbn.
func (rs *redisBookStorage) Exists(ctx context.Context, isbn string) (bool, error) {
	return rs.client.HExists(ctx, HBooks, isbn).Result()
}

// Insert stores a new book record. HSetNX provides the atomic duplicate
// rejection, so a concurrent insert for the same isbn loses cleanly.
func (rs *redisBookStorage) Insert(ctx context.Context, book Book) error {
	if !book.ReadingStatus.IsValid() {
		book.ReadingStatus = StatusUnread
	}
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	set, err := rs.client.HSetNX(ctx, HBooks, book.ISBN, bookBytes).Result()
	if err != nil {
		return err
	}
	if !set {
		return ErrBookAlreadyExists
	}
	return nil
}

// GetOne retrieves a book record based on its isbn.
func (rs *redisBookStorage) GetOne(ctx context.Context, isbn string) (Book, error) {
	var book Book
	bookJSONString, err := rs.client.HGet(ctx, HBooks, isbn).Result()
	if err == redis.Nil {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, err
	}
	err = json.Unmarshal([]byte(bookJSONString), &book)
	return book, err
}

// Update rewrites the record with the non-nil fields of the partial update.
func (rs *redisBookStorage) Update(ctx context.Context, isbn string, update BookUpdate) (Book, error) {
	book, err := rs.GetOne(ctx, isbn)
	if err != nil {
		return book, err
	}
	update.ApplyTo(&book)
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return book, err
	}
	err = rs.client.HSet(ctx, HBooks, isbn, bookBytes).Err()
	return book, err
}

// Delete removes a book record based on its isbn.
func (rs *redisBookStorage) Delete(ctx context.Context, isbn string) error {
	removed, err := rs.client.HDel(ctx, HBooks, isbn).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrBookNotFound
	}
	return nil
}

// GetAll retrieves one page of the whole collection ordered by title.
func (rs *redisBookStorage) GetAll(ctx context.Context, page PageRequest) ([]Book, error) {
	books, err := rs.scan(ctx)
	if err != nil {
		return nil, err
	}
	SortBooks(books)
	return PaginateBooks(books, page), nil
}

// CountAll returns the total number of stored books.
func (rs *redisBookStorage) CountAll(ctx context.Context) (int64, error) {
	return rs.client.HLen(ctx, HBooks).Result()
}

// Search retrieves one page of the records matching the filter.
func (rs *redisBookStorage) Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error) {
	if filter.IsZero() {
		return []Book{}, nil
	}
	books, err := rs.scan(ctx)
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
func (rs *redisBookStorage) SearchCount(ctx context.Context, filter BookFilter) (int64, error) {
	if filter.IsZero() {
		return 0, nil
	}
	books, err := rs.scan(ctx)
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
func (rs *redisBookStorage) UpdateReadingStatus(ctx context.Context, isbn string, status ReadingStatus) (Book, error) {
	if !status.IsValid() {
		return Book{}, ErrInvalidReadingStatus
	}
	return rs.Update(ctx, isbn, BookUpdate{ReadingStatus: &status})
}

// Statistics aggregates per-status counts over the whole hash.
func (rs *redisBookStorage) Statistics(ctx context.Context) (ReadingStatistics, error) {
	books, err := rs.scan(ctx)
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

// scan retrieves every stored record from the hash.
func (rs *redisBookStorage) scan(ctx context.Context) ([]Book, error) {
	values, err := rs.client.HVals(ctx, HBooks).Result()
	if err != nil {
		return nil, err
	}
	books := []Book{}
	for _, bookJSONString := range values {
		var book Book
		if err = json.Unmarshal([]byte(bookJSONString), &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
