// Package mongo stores the ledger state as one MongoDB document.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/core"
	"budgetbook/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the stored shape. Payload is the storage codec output so all
// backends share one serialisation.
type document struct {
	ID        string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type Repository struct {
	client     *mongo.Client
	collection *mongo.Collection
	key        string
}

// New connects and pings the server.
func New(ctx context.Context, uri, dbName, collName, key string) (*Repository, error) {
	if key == "" {
		key = storage.DefaultKey
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.InfoContext(ctx, "Connected to MongoDB", "database", dbName, "collection", collName)
	return &Repository{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
		key:        key,
	}, nil
}

func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func (r *Repository) Load(ctx context.Context) (core.State, error) {
	var doc document
	err := r.collection.FindOne(ctx, bson.M{"_id": r.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.State{}, storage.ErrNotFound
	}
	if err != nil {
		return core.State{}, fmt.Errorf("failed to find ledger state: %w", err)
	}
	return storage.Decode(doc.Payload)
}

// Save replaces the document, inserting it on first use.
func (r *Repository) Save(ctx context.Context, s core.State) error {
	payload, err := storage.Encode(s)
	if err != nil {
		return err
	}
	doc := document{ID: r.key, Payload: payload, UpdatedAt: time.Now().UTC()}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": r.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save ledger state: %w", err)
	}
	return nil
}
