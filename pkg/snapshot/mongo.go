package snapshot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase   = "statcard"
	mongoCollection = "snapshots"
)

// MongoStore keeps one document per login in the snapshots collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and ensures a unique index on login.
// The database name is taken from the URI path, defaulting to "statcard".
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	cs := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, cs)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := newMongoStore(client, databaseFromURI(uri))
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create login index: %w", err)
	}
	return s, nil
}

func newMongoStore(client *mongo.Client, db string) *MongoStore {
	return &MongoStore{client: client, coll: client.Database(db).Collection(mongoCollection)}
}

func (s *MongoStore) Get(ctx context.Context, login string) (*Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"login": Key(login)}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MongoStore) Put(ctx context.Context, snap *Snapshot) error {
	doc := *snap
	doc.Login = Key(snap.Login)
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"login": doc.Login},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo put snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return mongoDatabase
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return mongoDatabase
}
