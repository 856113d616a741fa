package inventory

import (
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LowStockThreshold is the quantity below which a balance counts as low stock
const LowStockThreshold int64 = 20

// StockBalance is the current stock level for one (store, product) pair.
// Exactly one row exists per pair; it is created lazily with quantity zero
// when the first movement for the pair is reconciled.
type StockBalance struct {
	shared.BaseAggregateRoot
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_balances_store_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_balances_store_product"`
	Quantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockBalance) TableName() string {
	return "stock_balances"
}

// NewStockBalance creates an empty balance for a (store, product) pair
func NewStockBalance(storeID, productID uuid.UUID) (*StockBalance, error) {
	if storeID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BALANCE_KEY", "Store ID and Product ID are required")
	}
	return &StockBalance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		ProductID:         productID,
		Quantity:          0,
	}, nil
}

// Apply applies a movement to the balance. Inbound movements add the
// quantity; outbound movements subtract it, clamping at zero when the
// requested quantity exceeds what is on hand. Insufficient stock is not
// an error. The applied (possibly clamped) delta is returned.
func (b *StockBalance) Apply(kind MovementKind, quantity int64) (int64, error) {
	if !kind.IsValid() {
		return 0, shared.NewDomainError("INVALID_MOVEMENT_KIND", "Movement kind must be IN, OUT or REMOVE")
	}
	if quantity < 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	var applied int64
	if kind.IsInbound() {
		applied = quantity
		b.Quantity += quantity
	} else {
		applied = quantity
		if quantity > b.Quantity {
			applied = b.Quantity
		}
		b.Quantity -= applied
	}

	b.IncrementVersion()
	b.AddDomainEvent(NewStockReconciledEvent(b, kind, quantity, applied))
	if !kind.IsInbound() && b.Quantity == 0 {
		b.AddDomainEvent(NewStockDepletedEvent(b))
	}
	return applied, nil
}

// IsOutOfStock reports whether the balance is exactly zero
func (b *StockBalance) IsOutOfStock() bool {
	return b.Quantity == 0
}

// IsLowStock reports whether the balance is above zero but below the threshold
func (b *StockBalance) IsLowStock() bool {
	return b.Quantity > 0 && b.Quantity < LowStockThreshold
}

// StatusForQuantity returns the stock status label for a raw quantity,
// for callers that hold a quantity without the full balance row.
func StatusForQuantity(quantity int64) string {
	switch {
	case quantity == 0:
		return "out_of_stock"
	case quantity < LowStockThreshold:
		return "low_stock"
	default:
		return "in_stock"
	}
}

// Status returns the stock status label used by the read API
func (b *StockBalance) Status() string {
	return StatusForQuantity(b.Quantity)
}
