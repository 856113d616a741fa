package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StockCache caches per-(store, product) stock reads. Invalidation is
// best-effort: callers log failures and carry on, so a broken cache can
// serve stale values until the key expires but never blocks reconciliation.
type StockCache interface {
	// Get returns the cached quantity and whether the key was present
	Get(ctx context.Context, storeID, productID uuid.UUID) (int64, bool, error)
	// Set stores the quantity for the pair
	Set(ctx context.Context, storeID, productID uuid.UUID, quantity int64) error
	// Invalidate removes the cached entry for the pair
	Invalidate(ctx context.Context, storeID, productID uuid.UUID) error
}

// StockKey builds the cache key for a (store, product) pair
func StockKey(storeID, productID uuid.UUID) string {
	return fmt.Sprintf("stock_%s_%s", storeID, productID)
}
