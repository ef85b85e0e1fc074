package database

import (
	"context"
	"fmt"
	"io"

	"github.com/pageza/recipe-vault/backend/config"
	"github.com/pageza/recipe-vault/backend/internal/storage"
	"github.com/redis/go-redis/v9"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// Connections are the handles opened for a configuration. Redis is set
// whenever a redis server is configured, even if documents live elsewhere,
// so the rate limiter can share it.
type Connections struct {
	Storage storage.Storage
	Redis   *redis.Client
	closers []io.Closer
}

// Close releases every handle in reverse order of opening.
func (c *Connections) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Connect opens the storage backend and optional redis client from cfg.
func Connect(ctx context.Context, cfg *config.Config) (*Connections, error) {
	conns := &Connections{}

	if cfg.Redis.Enabled() {
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		conns.Redis = client
		conns.closers = append(conns.closers, client)
	}

	store, closer, err := openStorage(ctx, cfg, conns.Redis)
	if err != nil {
		_ = conns.Close()
		return nil, err
	}
	conns.Storage = store
	conns.closers = append(conns.closers, closer)
	return conns, nil
}

func openStorage(ctx context.Context, cfg *config.Config, rdb *redis.Client) (storage.Storage, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nopCloser, nil

	case config.BackendSQLite, config.BackendPostgres:
		db, err := Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewGormStorage(db)
		if err != nil {
			_ = Close(db)
			return nil, nil, err
		}
		return store, closerFunc(func() error { return Close(db) }), nil

	case config.BackendRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("redis backend selected but no redis server configured")
		}
		return storage.NewRedisStorage(rdb, cfg.Storage.KeyPrefix), nopCloser, nil

	case config.BackendS3:
		client, err := config.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return storage.NewS3Storage(client, cfg.Storage.S3Bucket, cfg.Storage.S3Prefix), nopCloser, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
