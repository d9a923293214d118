package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	retryInterval  = 3 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client and verifies connectivity with a ping.
// Connection attempts are retried on a fixed interval until the context is
// cancelled; an unreachable store at boot is a wait, not a crash.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var client *mongo.Client
	err := retry.Do(ctx, retry.NewConstant(retryInterval), func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		c, err := mongo.Connect(attemptCtx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			log.Warn().Err(err).Msg("mongo connect failed, retrying")
			return retry.RetryableError(err)
		}

		if err := c.Ping(attemptCtx, nil); err != nil {
			_ = c.Disconnect(attemptCtx)
			log.Warn().Err(err).Msg("mongo ping failed, retrying")
			return retry.RetryableError(err)
		}

		client = c
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// email index is what closes the race between two concurrent registrations
// with the same address.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	_, err = db.Collection(todosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create todo owner index: %w", err)
	}
	return nil
}
