package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient connects and pings a Redis client.
func NewClient(address, password string, db int, appLogger *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", address, err)
	}
	appLogger.Info("Successfully connected to Redis", zap.String("address", address))
	return rdb, nil
}

// cacheRepository implements domain.CacheRepository on Redis.
type cacheRepository struct {
	client *redis.Client
	logger *logger.Logger
}

func NewCacheRepository(client *redis.Client, appLogger *logger.Logger) domain.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: appLogger.Named("RedisCache"),
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Redis Get failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get for key %q: %w", key, err)
	}
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis Set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set for key %q: %w", key, err)
	}
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis Del failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis del for key %q: %w", key, err)
	}
	return nil
}
