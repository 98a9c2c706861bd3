package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BookServiceProvider defines the operations offered to the api handlers.
type BookServiceProvider interface {
	AddByISBN(ctx context.Context, isbn string) (Book, error)
	AddManually(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, isbn string) (Book, error)
	Update(ctx context.Context, isbn string, update BookUpdate) (Book, error)
	Delete(ctx context.Context, isbn string) error
	GetAll(ctx context.Context, page PageRequest) ([]Book, Pagination, error)
	Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, Pagination, error)
	ByAuthor(ctx context.Context, author string, page PageRequest) ([]Book, Pagination, error)
	ByCategory(ctx context.Context, category string, page PageRequest) ([]Book, Pagination, error)
	ByStatus(ctx context.Context, status string, page PageRequest) ([]Book, Pagination, error)
	UpdateReadingStatus(ctx context.Context, isbn string, status string) (Book, error)
	Statistics(ctx context.Context) (ReadingStatistics, error)
}

// BookService orchestrates validation, catalog lookups and storage calls.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
	catalog BookCatalog
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage, catalog BookCatalog) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
		catalog: catalog,
	}
}

// AddByISBN registers a book from its isbn only: validate the format,
// reject duplicates, enrich from the external catalog and persist. The
// duplicate check is advisory, the storage unique key is authoritative.
func (bs *BookService) AddByISBN(ctx context.Context, isbn string) (Book, error) {
	var book Book
	if !IsValidISBN(isbn) {
		return book, ErrInvalidISBN
	}
	normalized := NormalizeISBN(isbn)

	exists, err := bs.storage.Exists(ctx, normalized)
	if err != nil {
		return book, err
	}
	if exists {
		return book, ErrBookAlreadyExists
	}

	book, err = bs.catalog.FetchByISBN(ctx, normalized)
	if err != nil {
		return Book{}, err
	}

	book.ISBN = normalized
	book.ReadingStatus = StatusUnread
	now := bs.clock.Now().UTC().Format(time.RFC3339)
	book.CreatedAt = now
	book.UpdatedAt = now

	if err = bs.storage.Insert(ctx, book); err != nil {
		return Book{}, err
	}
	bs.logger.Info("service: book registered from catalog", zap.String("book.isbn", normalized))
	return book, nil
}

// AddManually registers a book from a client supplied record. The isbn
// format is validated and normalized, the other required fields were
// already checked at the handler boundary.
func (bs *BookService) AddManually(ctx context.Context, book Book) (Book, error) {
	if !IsValidISBN(book.ISBN) {
		return Book{}, ErrInvalidISBN
	}
	book.ISBN = NormalizeISBN(book.ISBN)

	if book.ReadingStatus == "" {
		book.ReadingStatus = StatusUnread
	}
	if !book.ReadingStatus.IsValid() {
		return Book{}, ErrInvalidReadingStatus
	}
	now := bs.clock.Now().UTC().Format(time.RFC3339)
	book.CreatedAt = now
	book.UpdatedAt = now

	if err := bs.storage.Insert(ctx, book); err != nil {
		return Book{}, err
	}
	bs.logger.Info("service: book registered manually", zap.String("book.isbn", book.ISBN))
	return book, nil
}

// GetOne fetches a single record by isbn.
func (bs *BookService) GetOne(ctx context.Context, isbn string) (Book, error) {
	if !IsValidISBN(isbn) {
		return Book{}, ErrInvalidISBN
	}
	return bs.storage.GetOne(ctx, NormalizeISBN(isbn))
}

// Update applies a partial update. The payload isbn is stripped before
// it reaches the storage, the key is immutable.
func (bs *BookService) Update(ctx context.Context, isbn string, update BookUpdate) (Book, error) {
	if !IsValidISBN(isbn) {
		return Book{}, ErrInvalidISBN
	}
	if update.ReadingStatus != nil && !update.ReadingStatus.IsValid() {
		return Book{}, ErrInvalidReadingStatus
	}
	update.ISBN = nil
	now := bs.clock.Now().UTC().Format(time.RFC3339)
	update.UpdatedAt = &now
	return bs.storage.Update(ctx, NormalizeISBN(isbn), update)
}

// Delete removes a record by isbn.
func (bs *BookService) Delete(ctx context.Context, isbn string) error {
	if !IsValidISBN(isbn) {
		return ErrInvalidISBN
	}
	return bs.storage.Delete(ctx, NormalizeISBN(isbn))
}

// GetAll lists one page of the collection with its pagination block.
func (bs *BookService) GetAll(ctx context.Context, page PageRequest) ([]Book, Pagination, error) {
	page = page.Normalize()
	books, err := bs.storage.GetAll(ctx, page)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := bs.storage.CountAll(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}
	return books, NewPagination(page, int64(len(books)), total), nil
}

// Search lists one page of the records matching the filter.
func (bs *BookService) Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, Pagination, error) {
	page = page.Normalize()
	books, err := bs.storage.Search(ctx, filter, page)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := bs.storage.SearchCount(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	return books, NewPagination(page, int64(len(books)), total), nil
}

// ByAuthor lists the records whose authors contain the given substring.
func (bs *BookService) ByAuthor(ctx context.Context, author string, page PageRequest) ([]Book, Pagination, error) {
	return bs.Search(ctx, BookFilter{Author: author}, page)
}

// ByCategory lists the records whose categories contain the given substring.
func (bs *BookService) ByCategory(ctx context.Context, category string, page PageRequest) ([]Book, Pagination, error) {
	return bs.Search(ctx, BookFilter{Category: category}, page)
}

// ByStatus lists the records holding the exact given reading status.
func (bs *BookService) ByStatus(ctx context.Context, status string, page PageRequest) ([]Book, Pagination, error) {
	parsed, err := ParseReadingStatus(status)
	if err != nil {
		return nil, Pagination{}, err
	}
	return bs.Search(ctx, BookFilter{Status: parsed}, page)
}

// UpdateReadingStatus moves a book to another reading status.
func (bs *BookService) UpdateReadingStatus(ctx context.Context, isbn string, status string) (Book, error) {
	if !IsValidISBN(isbn) {
		return Book{}, ErrInvalidISBN
	}
	parsed, err := ParseReadingStatus(status)
	if err != nil {
		return Book{}, err
	}
	return bs.storage.UpdateReadingStatus(ctx, NormalizeISBN(isbn), parsed)
}

// Statistics aggregates reading counts over the whole collection.
func (bs *BookService) Statistics(ctx context.Context) (ReadingStatistics, error) {
	return bs.storage.Statistics(ctx)
}
