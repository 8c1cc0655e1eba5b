package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"bookshelf-backend/internal/config"
)

// MongoDB wraps the driver client and the application database handle.
// The document store serializes writes per document, which is all the
// consistency the book domain relies on.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	cfg      config.MongoConfig
}

func NewMongoDB(cfg config.MongoConfig) *MongoDB {
	return &MongoDB{cfg: cfg}
}

// Connect establishes the client and verifies it with a ping.
func (db *MongoDB) Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(db.cfg.URI).
		SetConnectTimeout(db.cfg.ConnectTimeout).
		SetMaxPoolSize(db.cfg.MaxPoolSize).
		SetMinPoolSize(db.cfg.MinPoolSize)

	client, err := mongo.Connect(opts)
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, db.cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	db.Client = client
	db.Database = client.Database(db.cfg.Database)
	return nil
}

// HealthCheck pings the primary with a short timeout.
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
