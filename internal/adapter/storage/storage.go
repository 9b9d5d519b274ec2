package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/pkg/retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	brandsCollection     = "brands"
	reviewsCollection    = "reviews"
	ordersCollection     = "orders"
	districtsCollection  = "deliverydistricts"
	tagsCollection       = "tags"
	countersCollection   = "counters"
)

type PoolConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

// A MongoDB is the catalog document store connection.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDB(
	ctx context.Context, uri, database string, pool PoolConfig,
) (MongoDB, error) {
	const op = "NewMongoDB"
	log := slog.With("op", op)

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(pool.MaxPoolSize).
		SetMinPoolSize(pool.MinPoolSize).
		SetMaxConnIdleTime(pool.MaxConnIdleTime).
		SetServerSelectionTimeout(pool.ServerSelectionTimeout).
		SetSocketTimeout(pool.SocketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return MongoDB{}, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return MongoDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("database is available", "database", database)
	return MongoDB{client: client, db: client.Database(database)}, nil
}

func (s MongoDB) Database() *mongo.Database {
	return s.db
}

func (s MongoDB) Close(ctx context.Context) {
	const op = "MongoDB.Close"
	log := slog.With("op", op)

	log.Info("closing database connection...")

	if err := s.client.Disconnect(ctx); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("database connection is closed")
}

// storeErr translates driver errors to domain errors.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

// objectID parses an entity id. A malformed id can't match any document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", domain.ErrNotFound, id)
	}
	return oid, nil
}

// refID parses an optional reference id carried by a payload.
func refID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reference id %q", domain.ErrValidation, id)
	}
	return &oid, nil
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, id)
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

func hexIDs(oids []primitive.ObjectID) []string {
	ids := make([]string, len(oids))
	for i, oid := range oids {
		ids[i] = oid.Hex()
	}
	return ids
}

func hexRef(oid *primitive.ObjectID) string {
	if oid == nil {
		return ""
	}
	return oid.Hex()
}

func stage(name string, v any) bson.D {
	return bson.D{{Key: name, Value: v}}
}

// refAttacher maintains a product back-reference list of a collection.
type refAttacher struct {
	coll *mongo.Collection
}

func (r refAttacher) attach(ctx context.Context, ownerID, productID string) error {
	return r.update(ctx, ownerID, productID, "$addToSet")
}

// attachMany adds product ids to their owners in one unordered bulk write.
func (r refAttacher) attachMany(ctx context.Context, refs map[string][]string) error {
	models, err := attachModels(refs)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := r.coll.BulkWrite(ctx, models, unorderedBulk()); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r refAttacher) detach(ctx context.Context, ownerID, productID string) error {
	return r.update(ctx, ownerID, productID, "$pull")
}

func (r refAttacher) update(
	ctx context.Context, ownerID, productID, operator string,
) error {
	owner, err := objectID(ownerID)
	if err != nil {
		return err
	}
	product, err := objectID(productID)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: owner}},
		stage(operator, bson.D{{Key: "products", Value: product}}),
	)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
