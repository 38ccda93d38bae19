// Package mongodb provides MongoDB-backed store implementations. MongoDB is
// the primary production store: the core only ever needs atomic
// single-document read-modify-write, which a document database gives
// without transactions.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config configures the MongoDB connection.
type Config struct {
	// URI is the MongoDB connection string.
	URI string
	// Database is the database name.
	Database string
	// ConnectTimeout bounds the initial connection.
	ConnectTimeout time.Duration
	// QueryTimeout bounds each store operation.
	QueryTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "launchpad",
		ConnectTimeout: 10 * time.Second,
		QueryTimeout:   5 * time.Second,
	}
}

// Client wraps a MongoDB client with launchpad configuration.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	config Config
}

// NewClient connects to MongoDB and verifies the connection.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	if config.URI == "" {
		return nil, errors.New("mongodb URI is required")
	}
	if config.Database == "" {
		config.Database = "launchpad"
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(config.Database),
		config: config,
	}, nil
}

// Collection returns a collection handle.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
