package inventory

import (
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants
const (
	EventStockReconciled = "inventory.stock_reconciled"
	EventStockDepleted   = "inventory.stock_depleted"
)

// StockReconciledEvent is raised after a movement has been applied to a balance
type StockReconciledEvent struct {
	shared.BaseDomainEvent
	StoreID     uuid.UUID    `json:"store_id"`
	ProductID   uuid.UUID    `json:"product_id"`
	Kind        MovementKind `json:"kind"`
	Requested   int64        `json:"requested"`
	Applied     int64        `json:"applied"`
	NewQuantity int64        `json:"new_quantity"`
}

// NewStockReconciledEvent creates a StockReconciledEvent
func NewStockReconciledEvent(balance *StockBalance, kind MovementKind, requested, applied int64) *StockReconciledEvent {
	return &StockReconciledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockReconciled, "StockBalance", balance.ID),
		StoreID:         balance.StoreID,
		ProductID:       balance.ProductID,
		Kind:            kind,
		Requested:       requested,
		Applied:         applied,
		NewQuantity:     balance.Quantity,
	}
}

// StockDepletedEvent is raised when an outbound movement drives a balance to zero
type StockDepletedEvent struct {
	shared.BaseDomainEvent
	StoreID   uuid.UUID `json:"store_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewStockDepletedEvent creates a StockDepletedEvent
func NewStockDepletedEvent(balance *StockBalance) *StockDepletedEvent {
	return &StockDepletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockDepleted, "StockBalance", balance.ID),
		StoreID:         balance.StoreID,
		ProductID:       balance.ProductID,
	}
}
