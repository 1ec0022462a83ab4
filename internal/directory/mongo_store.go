package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	snapshotCollection = "directory_snapshots"
	snapshotID         = "providers"
)

type snapshotDocument struct {
	ID        string                  `bson:"_id"`
	Providers []model.ServiceProvider `bson:"providers"`
	UpdatedAt time.Time               `bson:"updated_at"`
}

// MongoSnapshotStore shares the snapshot between gateway instances as a
// single document.
type MongoSnapshotStore struct {
	collection *mongo.Collection
}

func NewMongoSnapshotStore(client *mongo.Client, databaseName string) *MongoSnapshotStore {
	return &MongoSnapshotStore{
		collection: client.Database(databaseName).Collection(snapshotCollection),
	}
}

func (s *MongoSnapshotStore) Save(ctx context.Context, providers []model.ServiceProvider) error {
	doc := snapshotDocument{
		ID:        snapshotID,
		Providers: providers,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save provider snapshot: %w", err)
	}
	return nil
}

func (s *MongoSnapshotStore) Load(ctx context.Context) ([]model.ServiceProvider, error) {
	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []model.ServiceProvider{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider snapshot: %w", err)
	}
	if doc.Providers == nil {
		return []model.ServiceProvider{}, nil
	}
	return doc.Providers, nil
}
