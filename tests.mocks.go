package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	ExistsFunc              func(ctx context.Context, isbn string) (bool, error)
	InsertFunc              func(ctx context.Context, book Book) error
	GetOneFunc              func(ctx context.Context, isbn string) (Book, error)
	UpdateFunc              func(ctx context.Context, isbn string, update BookUpdate) (Book, error)
	DeleteFunc              func(ctx context.Context, isbn string) error
	GetAllFunc              func(ctx context.Context, page PageRequest) ([]Book, error)
	CountAllFunc            func(ctx context.Context) (int64, error)
	SearchFunc              func(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error)
	SearchCountFunc         func(ctx context.Context, filter BookFilter) (int64, error)
	UpdateReadingStatusFunc func(ctx context.Context, isbn string, status ReadingStatus) (Book, error)
	StatisticsFunc          func(ctx context.Context) (ReadingStatistics, error)
}

// Exists mocks the behavior of the duplicate check of the repository.
func (m *MockBookStorage) Exists(ctx context.Context, isbn string) (bool, error) {
	return m.ExistsFunc(ctx, isbn)
}

// Insert mocks the behavior of book insertion by the repository.
func (m *MockBookStorage) Insert(ctx context.Context, book Book) error {
	return m.InsertFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, isbn string) (Book, error) {
	return m.GetOneFunc(ctx, isbn)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, isbn string, update BookUpdate) (Book, error) {
	return m.UpdateFunc(ctx, isbn, update)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, isbn string) error {
	return m.DeleteFunc(ctx, isbn)
}

// GetAll mocks the behavior of listing a page of books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context, page PageRequest) ([]Book, error) {
	return m.GetAllFunc(ctx, page)
}

// CountAll mocks the behavior of counting all books by the repository.
func (m *MockBookStorage) CountAll(ctx context.Context) (int64, error) {
	return m.CountAllFunc(ctx)
}

// Search mocks the behavior of filtering books by the repository.
func (m *MockBookStorage) Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error) {
	return m.SearchFunc(ctx, filter, page)
}

// SearchCount mocks the behavior of counting filtered books by the repository.
func (m *MockBookStorage) SearchCount(ctx context.Context, filter BookFilter) (int64, error) {
	return m.SearchCountFunc(ctx, filter)
}

// UpdateReadingStatus mocks the behavior of moving a book to another status.
func (m *MockBookStorage) UpdateReadingStatus(ctx context.Context, isbn string, status ReadingStatus) (Book, error) {
	return m.UpdateReadingStatusFunc(ctx, isbn, status)
}

// Statistics mocks the behavior of aggregating reading counts by the repository.
func (m *MockBookStorage) Statistics(ctx context.Context) (ReadingStatistics, error) {
	return m.StatisticsFunc(ctx)
}

// MockBookCatalog implements a fake external metadata provider.
type MockBookCatalog struct {
	FetchByISBNFunc func(ctx context.Context, isbn string) (Book, error)
}

// FetchByISBN mocks the catalog lookup of a book by isbn.
func (m *MockBookCatalog) FetchByISBN(ctx context.Context, isbn string) (Book, error) {
	return m.FetchByISBNFunc(ctx, isbn)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}
