// Package repository persists the store's documents in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid id")

	// ErrNothingToUpdate is returned by update methods given no fields to set.
	ErrNothingToUpdate = errors.New("nothing to update")
)

const defaultLimit = 10

// ParseID converts a hex identifier to an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return objectID, nil
}

// ListParams defines pagination shared by list operations.
type ListParams struct {
	Limit    uint64
	Offset   uint64
	SortBy   *string
	SortDesc bool
}

func (p ListParams) findOptions(sortable map[string]bool) *options.FindOptionsBuilder {
	findOptions := options.Find()

	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	findOptions.SetLimit(int64(limit))

	if p.Offset > 0 {
		findOptions.SetSkip(int64(p.Offset))
	}

	sortBy := "created_at"
	if p.SortBy != nil && sortable[*p.SortBy] {
		sortBy = *p.SortBy
	}

	sortOrder := 1
	if p.SortDesc {
		sortOrder = -1
	}
	findOptions.SetSort(bson.D{{Key: sortBy, Value: sortOrder}})

	return findOptions
}

// documentCollection holds the CRUD plumbing shared by the catalogue and content repositories.
type documentCollection[T any] struct {
	collection *mongo.Collection
}

func (c documentCollection[T]) insert(ctx context.Context, doc *T) (bson.ObjectID, error) {
	result, err := c.collection.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.New("failed to convert inserted ID to ObjectID")
	}

	return objectID, nil
}

func (c documentCollection[T]) findByID(ctx context.Context, id string) (*T, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc T
	if err := c.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (c documentCollection[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]*T, error) {
	cursor, err := c.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (c documentCollection[T]) updateByID(ctx context.Context, id string, update bson.M) (*T, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	result := c.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (c documentCollection[T]) deleteByID(ctx context.Context, id string) (*T, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	result := c.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}
