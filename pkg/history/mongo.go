package history

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pathlight/pathlight/pkg/errors"
)

// MongoStore persists visits durably in a MongoDB collection, indexed by
// session and time. It suits deployments that analyze navigation trails after
// the fact.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	cap    int
}

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "pathlight"
	Collection string // defaults to "visits"
	Cap        int    // max visits per session, <= 0 means DefaultMongoCap
}

// DefaultMongoCap is the per-session visit cap when MongoConfig.Cap is unset.
const DefaultMongoCap = 1000

// NewMongoStore connects to MongoDB and ensures the session/time index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "pathlight"
	}
	if cfg.Collection == "" {
		cfg.Collection = "visits"
	}
	if cfg.Cap <= 0 {
		cfg.Cap = DefaultMongoCap
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "connect to mongo at %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "ping mongo at %s", cfg.URI)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create history index")
	}

	return &MongoStore{client: client, coll: coll, cap: cfg.Cap}, nil
}

// Append inserts the visit and evicts the session's oldest visits past the cap.
func (s *MongoStore) Append(ctx context.Context, v Visit) error {
	if _, err := s.coll.InsertOne(ctx, v); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "append visit for %s", v.SessionID)
	}

	count, err := s.coll.CountDocuments(ctx, bson.M{"session_id": v.SessionID})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "count visits for %s", v.SessionID)
	}
	if count <= int64(s.cap) {
		return nil
	}

	// Delete the overflow, oldest first.
	cur, err := s.coll.Find(ctx,
		bson.M{"session_id": v.SessionID},
		options.Find().SetSort(bson.D{{Key: "at", Value: 1}}).SetLimit(count-int64(s.cap)),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "find overflow for %s", v.SessionID)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc Visit
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	_, err = s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "evict visits for %s", v.SessionID)
	}
	return nil
}

// Recent returns up to n visits for the session, newest first.
func (s *MongoStore) Recent(ctx context.Context, sessionID string, n int) ([]Visit, error) {
	if n <= 0 || n > s.cap {
		n = s.cap
	}

	cur, err := s.coll.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(int64(n)),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read history for %s", sessionID)
	}
	defer cur.Close(ctx)

	var out []Visit
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "decode history for %s", sessionID)
	}
	return out, nil
}

// Clear removes all visits for the session.
func (s *MongoStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "clear history for %s", sessionID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
