// Package repositorytest provides in-memory repositories that mirror the MongoDB
// implementations closely enough for usecase and handler tests: missing documents
// yield mongo.ErrNoDocuments, unique fields yield duplicate-key write exceptions and
// malformed identifiers yield repository.ErrInvalidID.
package repositorytest

import (
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

const defaultLimit = 10

func duplicateKeyError(key string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error dup key: " + key},
		},
	}
}

// store is an insertion-ordered map of documents guarded by a mutex.
// Documents are copied in and out so callers never share memory with it.
type store[T any] struct {
	mu    sync.Mutex
	order []bson.ObjectID
	docs  map[bson.ObjectID]*T
	clone func(*T) *T
}

func newStore[T any](clone func(*T) *T) *store[T] {
	return &store[T]{
		docs:  make(map[bson.ObjectID]*T),
		clone: clone,
	}
}

func (s *store[T]) put(id bson.ObjectID, doc *T) {
	if _, ok := s.docs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.docs[id] = s.clone(doc)
}

func (s *store[T]) get(id string) (*T, error) {
	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	doc, ok := s.docs[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return doc, nil
}

func (s *store[T]) remove(id string) (*T, error) {
	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	doc, ok := s.docs[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(s.docs, objectID)
	s.order = slices.DeleteFunc(s.order, func(o bson.ObjectID) bool { return o == objectID })

	return doc, nil
}

func (s *store[T]) first(match func(*T) bool) (*T, bool) {
	for _, id := range s.order {
		if doc := s.docs[id]; match(doc) {
			return doc, true
		}
	}

	return nil, false
}

// list returns matching documents in insertion order, reversed when SortDesc is set,
// then paginated. SortBy is ignored: insertion order stands in for created_at.
func (s *store[T]) list(params repository.ListParams, match func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, id := range s.order {
		if doc := s.docs[id]; match(doc) {
			out = append(out, s.clone(doc))
		}
	}

	if params.SortDesc {
		slices.Reverse(out)
	}

	offset := int(params.Offset)
	if offset >= len(out) {
		return make([]*T, 0)
	}
	out = out[offset:]

	limit := int(params.Limit)
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < len(out) {
		out = out[:limit]
	}

	return out
}

func now() time.Time {
	// Mongo stores milliseconds.
	return time.Now().UTC().Truncate(time.Millisecond)
}
