package inventory

import (
	"context"
	"testing"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStockDepletedHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("audits depletion", func(t *testing.T) {
		auditor := &recordingAuditor{}
		handler := NewStockDepletedHandler(zap.NewNop(), auditor)

		balance, err := inventory.NewStockBalance(uuid.New(), uuid.New())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, inventory.NewStockDepletedEvent(balance)))
		assert.Equal(t, []string{"stock_depleted"}, auditor.recorded())
	})

	t.Run("rejects other event types", func(t *testing.T) {
		handler := NewStockDepletedHandler(zap.NewNop(), &recordingAuditor{})

		balance, err := inventory.NewStockBalance(uuid.New(), uuid.New())
		require.NoError(t, err)
		event := inventory.NewStockReconciledEvent(balance, inventory.MovementIn, 1, 1)

		assert.Error(t, handler.Handle(ctx, event))
	})

	t.Run("subscribes to depletion events only", func(t *testing.T) {
		handler := NewStockDepletedHandler(zap.NewNop(), nil)
		assert.Equal(t, []string{inventory.EventStockDepleted}, handler.EventTypes())
	})
}
