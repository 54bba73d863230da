package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding sessions.
const Collection = "sessions"

// MongoStore keeps sessions in a MongoDB collection. A TTL index on
// expires_at lets the server purge expired documents; Get still checks
// expiry because the purge runs about once a minute.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, selects database db and ensures the TTL
// index exists.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	coll := client.Database(db).Collection(Collection)
	if _, err := coll.Indexes().CreateOne(ctx, ttlIndex()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func ttlIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	}
}

func idFilter(id string) bson.D { return bson.D{{Key: "_id", Value: id}} }

func expiredFilter(now time.Time) bson.D {
	return bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: now}}}}
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := m.coll.FindOne(ctx, idFilter(id)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", id, err)
	}
	if s.IsExpired(time.Now()) {
		return nil, ErrExpired
	}
	return &s, nil
}

func (m *MongoStore) Set(ctx context.Context, s *Session) error {
	_, err := m.coll.ReplaceOne(ctx, idFilter(s.ID), s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (m *MongoStore) Cleanup(ctx context.Context) error {
	if _, err := m.coll.DeleteMany(ctx, expiredFilter(time.Now())); err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}
	return nil
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
