package inventory

import (
	"context"
	"fmt"

	"github.com/bazaartech/backend/internal/domain/audit"
	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockDepletedHandler reacts to balances hitting zero. It logs the
// depletion and records an audit entry; both are observability concerns,
// so its errors never affect the reconciliation that raised the event.
type StockDepletedHandler struct {
	logger  *zap.Logger
	auditor AuditRecorder
}

// NewStockDepletedHandler creates a handler for stock depletion events
func NewStockDepletedHandler(logger *zap.Logger, auditor AuditRecorder) *StockDepletedHandler {
	return &StockDepletedHandler{
		logger:  logger,
		auditor: auditor,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockDepletedHandler) EventTypes() []string {
	return []string{inventory.EventStockDepleted}
}

// Handle processes a StockDepletedEvent
func (h *StockDepletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	depleted, ok := event.(*inventory.StockDepletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventStockDepleted, event.EventType())
	}

	h.logger.Warn("stock depleted",
		zap.String("store_id", depleted.StoreID.String()),
		zap.String("product_id", depleted.ProductID.String()),
	)

	if h.auditor != nil {
		h.auditor.RecordMovement(ctx, "stock_depleted", "system",
			depleted.StoreID, depleted.ProductID, nil,
			audit.MovementDetails{Timestamp: depleted.OccurredAt()})
	}

	return nil
}

var _ shared.EventHandler = (*StockDepletedHandler)(nil)
