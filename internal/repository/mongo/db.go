package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"wellvantage/fitness-app/internal/config"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
	indexTimeout   = time.Minute
)

// DB is an open connection to the application database.
type DB struct {
	*mongo.Database
	client *mongo.Client
	logger zerolog.Logger
}

// Open connects to MongoDB, verifies the primary answers and creates the
// indexes of every collection. The unique booking slot index is what makes a
// second booking of a slot fail, so Open refuses to continue without it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "mongo").Str("database", cfg.Name).Logger()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	db := &DB{Database: client.Database(cfg.Name), client: client, logger: logger}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	indexCtx, indexCancel := context.WithTimeout(ctx, indexTimeout)
	defer indexCancel()
	if err := EnsureIndexes(indexCtx, db.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	logger.Info().Msg("connected to MongoDB")
	return db, nil
}

// Close disconnects the client. Errors are logged.
func (db *DB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.client.Disconnect(ctx); err != nil {
		db.logger.Error().Err(err).Msg("failed to disconnect MongoDB")
	}
}

// EnsureIndexes creates the indexes of every collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return errors.Join(
		EnsureUserIndexes(ctx, db.Collection(userCollectionName)),
		EnsureAvailabilityIndexes(ctx, db.Collection(availabilityCollectionName)),
		EnsureBookingIndexes(ctx, db.Collection(bookingCollectionName)),
		EnsureWorkoutPlanIndexes(ctx, db.Collection(workoutPlanCollectionName)),
	)
}
