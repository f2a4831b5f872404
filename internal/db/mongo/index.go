package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/restodex/internal/db"
)

// EnsureIndexes creates the given indexes. Existing indexes with the same
// definition are left untouched by the server.
func (s *Store) EnsureIndexes(ctx context.Context, defs []*db.IndexDefinition) error {
	if len(defs) == 0 {
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return &db.Error{Op: db.OpCreateIndex, Err: err}
		}
		models = append(models, indexModel(def))
	}

	start := time.Now()
	_, err := s.coll.Indexes().CreateMany(ctx, models)
	observe(db.OpCreateIndex, start, err)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

func indexModel(def *db.IndexDefinition) mongo.IndexModel {
	keys := bson.D{}
	weights := bson.D{}

	for i := range def.Keys {
		k := &def.Keys[i]
		switch k.Kind {
		case db.IndexAsc:
			keys = append(keys, bson.E{Key: k.Field, Value: 1})
		case db.IndexDesc:
			keys = append(keys, bson.E{Key: k.Field, Value: -1})
		case db.IndexText:
			keys = append(keys, bson.E{Key: k.Field, Value: "text"})
			if k.Weight > 0 {
				weights = append(weights, bson.E{Key: k.Field, Value: k.Weight})
			}
		case db.Index2DSphere:
			keys = append(keys, bson.E{Key: k.Field, Value: "2dsphere"})
		}
	}

	opts := options.Index().SetName(def.Name)
	if len(weights) > 0 {
		opts.SetWeights(weights)
	}
	if def.IsText() && def.DefaultLanguage != "" {
		opts.SetDefaultLanguage(def.DefaultLanguage)
	}

	return mongo.IndexModel{Keys: keys, Options: opts}
}
