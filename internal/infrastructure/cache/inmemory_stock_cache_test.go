package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockKey(t *testing.T) {
	storeID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	productID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := StockKey(storeID, productID)
	assert.Equal(t, "stock_11111111-1111-1111-1111-111111111111_22222222-2222-2222-2222-222222222222", key)
}

func TestInMemoryStockCache(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	productID := uuid.New()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewInMemoryStockCache()
		_, ok, err := c.Get(ctx, storeID, productID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemoryStockCache()
		require.NoError(t, c.Set(ctx, storeID, productID, 42))

		quantity, ok, err := c.Get(ctx, storeID, productID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(42), quantity)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		c := NewInMemoryStockCache()
		require.NoError(t, c.Set(ctx, storeID, productID, 42))
		require.NoError(t, c.Invalidate(ctx, storeID, productID))

		_, ok, err := c.Get(ctx, storeID, productID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("invalidate on missing key is a no-op", func(t *testing.T) {
		c := NewInMemoryStockCache()
		assert.NoError(t, c.Invalidate(ctx, storeID, productID))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		c := NewInMemoryStockCache()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(n int64) {
				defer wg.Done()
				_ = c.Set(ctx, storeID, productID, n)
			}(int64(i))
			go func() {
				defer wg.Done()
				_, _, _ = c.Get(ctx, storeID, productID)
			}()
		}
		wg.Wait()
	})
}
