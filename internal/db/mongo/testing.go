package mongo

import "go.mongodb.org/mongo-driver/mongo"

// NewStoreForTest creates a Store over an existing client and collection (test-only).
func NewStoreForTest(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{client: client, coll: coll}
}
