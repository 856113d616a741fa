package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultStockTTL bounds staleness when an invalidation was missed
const DefaultStockTTL = 15 * time.Minute

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStockCache implements StockCache using Redis. Suitable for
// distributed deployments where several instances share cached reads.
type RedisStockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStockCache creates a Redis-backed stock cache
func NewRedisStockCache(cfg RedisConfig) (*RedisStockCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStockCache{client: client, ttl: DefaultStockTTL}, nil
}

// NewRedisStockCacheWithClient creates a cache with an existing Redis client
func NewRedisStockCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStockCache {
	if ttl <= 0 {
		ttl = DefaultStockTTL
	}
	return &RedisStockCache{client: client, ttl: ttl}
}

// Get returns the cached quantity for the pair
func (c *RedisStockCache) Get(ctx context.Context, storeID, productID uuid.UUID) (int64, bool, error) {
	val, err := c.client.Get(ctx, StockKey(storeID, productID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	quantity, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return quantity, true, nil
}

// Set stores the quantity for the pair
func (c *RedisStockCache) Set(ctx context.Context, storeID, productID uuid.UUID, quantity int64) error {
	return c.client.Set(ctx, StockKey(storeID, productID), strconv.FormatInt(quantity, 10), c.ttl).Err()
}

// Invalidate removes the cached entry for the pair
func (c *RedisStockCache) Invalidate(ctx context.Context, storeID, productID uuid.UUID) error {
	return c.client.Del(ctx, StockKey(storeID, productID)).Err()
}

// Close closes the underlying Redis client
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}

// Ensure RedisStockCache implements StockCache
var _ StockCache = (*RedisStockCache)(nil)
