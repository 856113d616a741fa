package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStockCache implements StockCache with a process-local map.
// Suitable for single-instance deployments and tests; it does not share
// state across processes.
type InMemoryStockCache struct {
	mu      sync.RWMutex
	entries map[string]int64
}

// NewInMemoryStockCache creates an empty in-memory stock cache
func NewInMemoryStockCache() *InMemoryStockCache {
	return &InMemoryStockCache{
		entries: make(map[string]int64),
	}
}

// Get returns the cached quantity for the pair
func (c *InMemoryStockCache) Get(ctx context.Context, storeID, productID uuid.UUID) (int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	quantity, ok := c.entries[StockKey(storeID, productID)]
	return quantity, ok, nil
}

// Set stores the quantity for the pair
func (c *InMemoryStockCache) Set(ctx context.Context, storeID, productID uuid.UUID, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[StockKey(storeID, productID)] = quantity
	return nil
}

// Invalidate removes the cached entry for the pair
func (c *InMemoryStockCache) Invalidate(ctx context.Context, storeID, productID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, StockKey(storeID, productID))
	return nil
}

// Len returns the number of cached entries
func (c *InMemoryStockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryStockCache implements StockCache
var _ StockCache = (*InMemoryStockCache)(nil)
