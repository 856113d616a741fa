package cache

import (
	"fmt"

	"github.com/bazaartech/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StockCacheFactory creates stock caches based on configuration
type StockCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StockCacheFactoryOption is a functional option for configuring the factory
type StockCacheFactoryOption func(*StockCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StockCacheFactoryOption {
	return func(f *StockCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls falling back to an in-memory cache when
// Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StockCacheFactoryOption {
	return func(f *StockCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStockCacheFactory creates a new factory
func NewStockCacheFactory(cfg config.RedisConfig, opts ...StockCacheFactoryOption) *StockCacheFactory {
	f := &StockCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache tries Redis first and falls back to an in-memory cache when
// Redis is unavailable and fallback is allowed.
func (f *StockCacheFactory) CreateCache() (StockCache, error) {
	cache, err := NewRedisStockCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis stock cache",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port))
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis stock cache: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stock cache",
		zap.Error(err))
	return NewInMemoryStockCache(), nil
}
