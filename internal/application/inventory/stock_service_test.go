package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStockServiceGetByStoreAndProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns balance with status", func(t *testing.T) {
		balances := new(MockStockBalanceRepository)
		svc := NewStockService(balances, &stubStockCache{}, zap.NewNop())

		storeID := uuid.New()
		productID := uuid.New()
		balance := newBalance(t, storeID, productID, 7)

		balances.On("FindByStoreAndProduct", ctx, storeID, productID).Return(balance, nil)

		response, err := svc.GetByStoreAndProduct(ctx, storeID, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), response.Quantity)
		assert.Equal(t, "low_stock", response.Status)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		balances := new(MockStockBalanceRepository)
		svc := NewStockService(balances, &stubStockCache{found: true, quantity: 3}, zap.NewNop())

		response, err := svc.GetByStoreAndProduct(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(3), response.Quantity)
		assert.Equal(t, "low_stock", response.Status)
		balances.AssertNotCalled(t, "FindByStoreAndProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache read failure falls back to the database", func(t *testing.T) {
		balances := new(MockStockBalanceRepository)
		svc := NewStockService(balances, &stubStockCache{found: true, quantity: 99, err: errors.New("redis down")}, zap.NewNop())

		storeID := uuid.New()
		productID := uuid.New()
		balance := newBalance(t, storeID, productID, 7)

		balances.On("FindByStoreAndProduct", ctx, storeID, productID).Return(balance, nil)

		response, err := svc.GetByStoreAndProduct(ctx, storeID, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), response.Quantity)
	})

	t.Run("cache write failure is tolerated", func(t *testing.T) {
		balances := new(MockStockBalanceRepository)
		svc := NewStockService(balances, &stubStockCache{err: errors.New("redis down")}, zap.NewNop())

		storeID := uuid.New()
		productID := uuid.New()
		balance := newBalance(t, storeID, productID, 50)

		balances.On("FindByStoreAndProduct", ctx, storeID, productID).Return(balance, nil)

		response, err := svc.GetByStoreAndProduct(ctx, storeID, productID)
		require.NoError(t, err)
		assert.Equal(t, "in_stock", response.Status)
	})

	t.Run("missing pair propagates not found", func(t *testing.T) {
		balances := new(MockStockBalanceRepository)
		svc := NewStockService(balances, &stubStockCache{}, zap.NewNop())

		storeID := uuid.New()
		productID := uuid.New()
		balances.On("FindByStoreAndProduct", ctx, storeID, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByStoreAndProduct(ctx, storeID, productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestStockServiceList(t *testing.T) {
	ctx := context.Background()
	balances := new(MockStockBalanceRepository)
	svc := NewStockService(balances, &stubStockCache{}, zap.NewNop())

	storeID := uuid.New()
	balance := newBalance(t, storeID, uuid.New(), 0)

	balances.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["store_id"] == storeID &&
			filter.Filters["status"] == "out_of_stock" &&
			filter.Search == "widget" &&
			filter.OrderBy == "updated_at" && filter.OrderDir == "desc"
	})).Return([]inventory.StockBalance{*balance}, nil)
	balances.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	responses, total, err := svc.List(ctx, StockListFilter{
		StoreID: &storeID,
		Status:  "out_of_stock",
		Search:  "widget",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "out_of_stock", responses[0].Status)
}
