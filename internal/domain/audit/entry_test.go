package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("requires action", func(t *testing.T) {
		_, err := NewEntry("", "alice", nil)
		assert.Error(t, err)
	})

	t.Run("defaults actor to system", func(t *testing.T) {
		entry, err := NewEntry("stock_in", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "system", entry.Actor)
	})

	t.Run("nil details leaves payload empty", func(t *testing.T) {
		entry, err := NewEntry("stock_in", "alice", nil)
		require.NoError(t, err)
		assert.Empty(t, entry.Details)
	})
}

func TestNewMovementEntry(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()
	userID := uuid.New()
	movementID := uuid.New()
	now := time.Now()

	entry, err := NewMovementEntry("stock_out", "alice", storeID, productID, &userID, MovementDetails{
		MovementID: movementID,
		Quantity:   12,
		Timestamp:  now,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.StoreID)
	assert.Equal(t, storeID, *entry.StoreID)
	require.NotNil(t, entry.ProductID)
	assert.Equal(t, productID, *entry.ProductID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)

	var details MovementDetails
	require.NoError(t, entry.DecodeDetails(&details))
	assert.Equal(t, movementID, details.MovementID)
	assert.Equal(t, int64(12), details.Quantity)
}
