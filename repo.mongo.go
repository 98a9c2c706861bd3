package main

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// bookSortOrder keeps listings stable between paginated calls.
var bookSortOrder = bson.D{{Key: "title", Value: 1}, {Key: "isbn", Value: 1}}

type mongoBookStorage struct {
	logger     *zap.Logger
	collection *mongo.Collection
}

// GetMongoClient connects to the document store and pings it.
func GetMongoClient(ctx context.Context, config *Config) (*mongo.Client, error) {
	cCtx, cancel := context.WithTimeout(ctx, config.Mongo.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(cCtx, options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v", err)
	}
	if err = client.Ping(cCtx, nil); err != nil {
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// NewMongoBookStorage provides a mongo-based book storage. The unique
// index on isbn backs the duplicate-insert contract, so a race between
// an existence check and an insert still resolves to a rejected insert.
func NewMongoBookStorage(ctx context.Context, logger *zap.Logger, client *mongo.Client, config *Config) (BookStorage, error) {
	collection := client.Database(config.Mongo.Database).Collection(config.Mongo.Collection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure unique isbn index: %v", err)
	}
	return &mongoBookStorage{logger: logger, collection: collection}, nil
}

// ciRegex builds a case-insensitive substring predicate. The needle is
// quoted so that user input never behaves as a pattern.
func ciRegex(needle string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(needle), Options: "i"}
}

// buildMongoFilter translates the search criteria into a server-side
// predicate: the free-text query ORs over title, authors and description
// while the remaining criteria are independent AND clauses. A regex on an
// array field matches any of its elements.
func buildMongoFilter(filter BookFilter) bson.M {
	clauses := []bson.M{}
	if filter.Query != "" {
		rx := ciRegex(filter.Query)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"title": rx},
			{"authors": rx},
			{"description": rx},
		}})
	}
	if filter.Title != "" {
		clauses = append(clauses, bson.M{"title": ciRegex(filter.Title)})
	}
	if filter.Author != "" {
		clauses = append(clauses, bson.M{"authors": ciRegex(filter.Author)})
	}
	if filter.Category != "" {
		clauses = append(clauses, bson.M{"categories": ciRegex(filter.Category)})
	}
	if filter.Status != "" {
		statusClause := bson.M{"reading_status": string(filter.Status)}
		if filter.Status == StatusUnread {
			// Documents written without the field count as unread, like
			// the in-memory matcher does.
			statusClause = bson.M{"$or": []bson.M{
				{"reading_status": string(StatusUnread)},
				{"reading_status": bson.M{"$exists": false}},
				{"reading_status": ""},
			}}
		}
		clauses = append(clauses, statusClause)
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// Exists verifies the presence of a record with the given isbn.
func (ms *mongoBookStorage) Exists(ctx context.Context, isbn string) (bool, error) {
	count, err := ms.collection.CountDocuments(ctx, bson.M{"isbn": isbn})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores a new book record. A missing reading status is persisted
// as unread. A duplicate key reports ErrBookAlreadyExists.
func (ms *mongoBookStorage) Insert(ctx context.Context, book Book) error {
	if !book.ReadingStatus.IsValid() {
		book.ReadingStatus = StatusUnread
	}
	_, err := ms.collection.InsertOne(ctx, book)
	if mongo.IsDuplicateKeyError(err) {
		return ErrBookAlreadyExists
	}
	return err
}

// GetOne retrieves a book record based on its isbn.
func (ms *mongoBookStorage) GetOne(ctx context.Context, isbn string) (Book, error) {
	var book Book
	err := ms.collection.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return book, ErrBookNotFound
	}
	return book, err
}

// Update applies the non-nil fields of the partial update. The isbn field
// of the payload is never part of the produced $set document.
func (ms *mongoBookStorage) Update(ctx context.Context, isbn string, update BookUpdate) (Book, error) {
	var book Book
	set := updateSetDocument(update)
	if len(set) == 0 {
		return ms.GetOne(ctx, isbn)
	}
	err := ms.collection.FindOneAndUpdate(
		ctx,
		bson.M{"isbn": isbn},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return book, ErrBookNotFound
	}
	return book, err
}

// updateSetDocument flattens a partial update into a $set document.
func updateSetDocument(update BookUpdate) bson.M {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Authors != nil {
		set["authors"] = *update.Authors
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Categories != nil {
		set["categories"] = *update.Categories
	}
	if update.PageCount != nil {
		set["page_count"] = *update.PageCount
	}
	if update.CoverImage != nil {
		set["cover_image"] = *update.CoverImage
	}
	if update.PublishedDate != nil {
		set["published_date"] = *update.PublishedDate
	}
	if update.Publisher != nil {
		set["publisher"] = *update.Publisher
	}
	if update.Language != nil {
		set["language"] = *update.Language
	}
	if update.ReadingStatus != nil {
		set["reading_status"] = string(*update.ReadingStatus)
	}
	if update.UpdatedAt != nil {
		set["updated_at"] = *update.UpdatedAt
	}
	return set
}

// Delete removes a book record based on its isbn.
func (ms *mongoBookStorage) Delete(ctx context.Context, isbn string) error {
	result, err := ms.collection.DeleteOne(ctx, bson.M{"isbn": isbn})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrBookNotFound
	}
	return nil
}

// GetAll retrieves one page of the whole collection ordered by title.
func (ms *mongoBookStorage) GetAll(ctx context.Context, page PageRequest) ([]Book, error) {
	opts := options.Find().
		SetSort(bookSortOrder).
		SetLimit(page.Limit).
		SetSkip(page.Skip)
	cursor, err := ms.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeBooksCursor(ctx, cursor)
}

// CountAll returns the total number of stored books.
func (ms *mongoBookStorage) CountAll(ctx context.Context) (int64, error) {
	return ms.collection.CountDocuments(ctx, bson.M{})
}

// Search retrieves one page of the records matching the filter. An empty
// filter matches nothing by contract.
func (ms *mongoBookStorage) Search(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error) {
	predicate := buildMongoFilter(filter)
	if predicate == nil {
		return []Book{}, nil
	}
	opts := options.Find().
		SetSort(bookSortOrder).
		SetLimit(page.Limit).
		SetSkip(page.Skip)
	cursor, err := ms.collection.Find(ctx, predicate, opts)
	if err != nil {
		return nil, err
	}
	return decodeBooksCursor(ctx, cursor)
}

// SearchCount returns the number of records matching the filter.
func (ms *mongoBookStorage) SearchCount(ctx context.Context, filter BookFilter) (int64, error) {
	predicate := buildMongoFilter(filter)
	if predicate == nil {
		return 0, nil
	}
	return ms.collection.CountDocuments(ctx, predicate)
}

// UpdateReadingStatus moves a book to another reading status.
func (ms *mongoBookStorage) UpdateReadingStatus(ctx context.Context, isbn string, status ReadingStatus) (Book, error) {
	var book Book
	if !status.IsValid() {
		return book, ErrInvalidReadingStatus
	}
	err := ms.collection.FindOneAndUpdate(
		ctx,
		bson.M{"isbn": isbn},
		bson.M{"$set": bson.M{"reading_status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return book, ErrBookNotFound
	}
	return book, err
}

// Statistics aggregates per-status counts. Records persisted without a
// reading status fall into the unread bucket.
func (ms *mongoBookStorage) Statistics(ctx context.Context) (ReadingStatistics, error) {
	total, err := ms.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return ReadingStatistics{}, err
	}
	read, err := ms.collection.CountDocuments(ctx, bson.M{"reading_status": string(StatusRead)})
	if err != nil {
		return ReadingStatistics{}, err
	}
	inProgress, err := ms.collection.CountDocuments(ctx, bson.M{"reading_status": string(StatusInProgress)})
	if err != nil {
		return ReadingStatistics{}, err
	}
	return NewReadingStatistics(read, total-read-inProgress, inProgress), nil
}

func decodeBooksCursor(ctx context.Context, cursor *mongo.Cursor) ([]Book, error) {
	defer cursor.Close(ctx)
	books := []Book{}
	for cursor.Next(ctx) {
		var book Book
		if err := cursor.Decode(&book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, cursor.Err()
}
