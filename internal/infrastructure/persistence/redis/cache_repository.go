// Package redis provides the Redis-backed cache repository
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// CacheRepository implements the cache repository interface over go-redis
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository connects to Redis and returns the repository. The
// connection is verified up front so a misconfigured cache fails fast at
// startup instead of on first use.
func NewCacheRepository(cfg config.RedisConfig, logger *zap.Logger) (*CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("database", cfg.Database))

	return &CacheRepository{
		client: client,
		logger: logger.Named("redis"),
	}, nil
}

// Get retrieves a value. A cache miss returns (nil, nil), not an error.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Close releases the connection pool
func (r *CacheRepository) Close() error {
	return r.client.Close()
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)
