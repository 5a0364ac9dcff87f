package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens a client for uri and pings the primary, bounding the whole
// handshake by timeout. The client is closed again if the ping fails.
func ConnectDB(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

// DisconnectDB closes the client's pooled connections, waiting at most until ctx is done.
func DisconnectDB(ctx context.Context, client *mongo.Client) error {
	return client.Disconnect(ctx)
}

// PingFunc returns a health check that pings the primary.
func PingFunc(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// EnsureIndexes creates the indexes every collection needs.
// Failures are logged and do not stop startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	ensure := func(collection *mongo.Collection, indexes []mongo.IndexModel) {
		names, err := collection.Indexes().CreateMany(ctx, indexes)
		if err != nil {
			logger.Warn("Failed to create indexes",
				zap.String("collection", collection.Name()),
				zap.Error(err))
			return
		}
		logger.Debug("Indexes ensured",
			zap.String("collection", collection.Name()),
			zap.Strings("indexes", names))
	}

	ensure(db.Collection(userCollectionName), userIndexes())
	ensure(db.Collection(exerciseCollectionName), exerciseIndexes())
}
