package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// InsertOne stores doc and returns the hex id of the inserted document.
func (s *Store) InsertOne(ctx context.Context, doc any) (string, error) {
	start := time.Now()
	res, err := s.coll.InsertOne(ctx, doc)
	observe(db.OpInsert, start, err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", &db.Error{Op: db.OpInsert, Err: db.ErrDuplicate}
		}
		return "", &db.Error{Op: db.OpInsert, Err: err}
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", &db.Error{Op: db.OpInsert, Err: errors.New("unexpected inserted id type")}
	}
	return oid.Hex(), nil
}

// FindByID decodes the document with the given hex id into out.
func (s *Store) FindByID(ctx context.Context, id string, out any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	observe(db.OpFindOne, start, ignoreNoDocuments(err))
	return mapSingleResultErr(db.OpFindOne, err)
}

// ReplaceByID overwrites the document with the given hex id.
func (s *Store) ReplaceByID(ctx context.Context, id string, doc any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	observe(db.OpReplace, start, err)
	if err != nil {
		return &db.Error{Op: db.OpReplace, Err: err}
	}
	if res.MatchedCount == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteByID removes the document with the given hex id and decodes the removed document into out.
func (s *Store) DeleteByID(ctx context.Context, id string, out any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(out)
	observe(db.OpDelete, start, ignoreNoDocuments(err))
	return mapSingleResultErr(db.OpDelete, err)
}

// Find runs a filtered find and decodes every matching document into out (a pointer to a slice).
func (s *Store) Find(ctx context.Context, q *db.FindQuery, out any) error {
	opts := options.Find()
	if q.Sort != nil {
		opts.SetSort(q.Sort)
	}
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	start := time.Now()
	err := s.find(ctx, orEmpty(q.Filter), opts, out)
	observe(db.OpFind, start, err)
	return err
}

func (s *Store) find(ctx context.Context, filter any, opts *options.FindOptions, out any) error {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	if err := cursor.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpDecode, Err: err}
	}
	return nil
}

// Count returns the number of documents matching filter.
func (s *Store) Count(ctx context.Context, filter any) (int64, error) {
	start := time.Now()
	n, err := s.coll.CountDocuments(ctx, orEmpty(filter))
	observe(db.OpCount, start, err)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Aggregate runs pipeline and decodes every output document into out (a pointer to a slice).
func (s *Store) Aggregate(ctx context.Context, pipeline any, out any) error {
	start := time.Now()
	err := s.aggregate(ctx, pipeline, out)
	observe(db.OpAggregate, start, err)
	return err
}

func (s *Store) aggregate(ctx context.Context, pipeline any, out any) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return &db.Error{Op: db.OpAggregate, Err: err}
	}
	if err := cursor.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpDecode, Err: err}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, db.ErrInvalidID
	}
	return oid, nil
}

func mapSingleResultErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return db.ErrNotFound
	default:
		return &db.Error{Op: op, Err: err}
	}
}

func ignoreNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

func orEmpty(filter any) any {
	if filter == nil {
		return bson.D{}
	}
	return filter
}

func observe(op string, start time.Time, err error) {
	metrics.ObserveStore(op, start, err)
}
