// Package redis provides the Redis-backed idempotency registry used by the
// effect dispatcher. A shared registry is what makes exactly-once effects
// hold across multiple platform instances.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrConnectionFailed indicates the Redis server could not be reached.
var ErrConnectionFailed = errors.New("redis connection failed")

// Config configures the Redis connection.
type Config struct {
	// Address is the host:port of the Redis server.
	Address string
	// Password authenticates the connection (optional).
	Password string
	// DB selects the logical database.
	DB int
	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
	// KeyPrefix namespaces all registry keys.
	KeyPrefix string
	// KeyTTL is how long delivered-effect keys are remembered. Zero keeps
	// them forever.
	KeyTTL time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     "localhost:6379",
		DialTimeout: 5 * time.Second,
		KeyPrefix:   "launchpad:",
		KeyTTL:      30 * 24 * time.Hour,
	}
}

// Registry is a Redis-backed idempotency registry.
type Registry struct {
	client    *redis.Client
	keyPrefix string
	keyTTL    time.Duration
}

// NewRegistry connects to Redis and verifies the connection.
func NewRegistry(cfg Config) (*Registry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return &Registry{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		keyTTL:    cfg.KeyTTL,
	}, nil
}

// NewRegistryFromClient creates a registry from an existing Redis client.
func NewRegistryFromClient(client *redis.Client, keyPrefix string, keyTTL time.Duration) *Registry {
	return &Registry{client: client, keyPrefix: keyPrefix, keyTTL: keyTTL}
}

func (r *Registry) prefixKey(key string) string {
	return r.keyPrefix + "effects:" + key
}

// Register records the key with SetNX and reports whether it was new.
func (r *Registry) Register(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, r.prefixKey(key), 1, r.keyTTL).Result()
}

// Close releases the underlying client.
func (r *Registry) Close() error {
	return r.client.Close()
}
