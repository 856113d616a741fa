package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()

	t.Run("valid movement", func(t *testing.T) {
		movement, err := NewStockMovement(storeID, productID, nil, MovementIn, 10)
		require.NoError(t, err)
		assert.Equal(t, storeID, movement.StoreID)
		assert.Equal(t, productID, movement.ProductID)
		assert.False(t, movement.Processed)
		assert.Nil(t, movement.SupplierID)
	})

	t.Run("carries supplier when given", func(t *testing.T) {
		supplierID := uuid.New()
		movement, err := NewStockMovement(storeID, productID, &supplierID, MovementIn, 10)
		require.NoError(t, err)
		require.NotNil(t, movement.SupplierID)
		assert.Equal(t, supplierID, *movement.SupplierID)
	})

	t.Run("rejects missing store", func(t *testing.T) {
		_, err := NewStockMovement(uuid.Nil, productID, nil, MovementIn, 10)
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewStockMovement(storeID, uuid.Nil, nil, MovementIn, 10)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewStockMovement(storeID, productID, nil, MovementKind("TRANSFER"), 10)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewStockMovement(storeID, productID, nil, MovementOut, -5)
		assert.Error(t, err)
	})

	t.Run("allows zero quantity", func(t *testing.T) {
		movement, err := NewStockMovement(storeID, productID, nil, MovementOut, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), movement.Quantity)
	})
}

func TestMovementDelta(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()

	in, err := NewStockMovement(storeID, productID, nil, MovementIn, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), in.Delta())

	out, err := NewStockMovement(storeID, productID, nil, MovementOut, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), out.Delta())

	rem, err := NewStockMovement(storeID, productID, nil, MovementRemove, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), rem.Delta())
}

func TestMovementKindAuditAction(t *testing.T) {
	assert.Equal(t, "stock_in", MovementIn.AuditAction())
	assert.Equal(t, "stock_out", MovementOut.AuditAction())
	assert.Equal(t, "stock_remove", MovementRemove.AuditAction())
}
