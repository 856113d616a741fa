package inventory

import (
	"strings"

	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementKind identifies the direction of a stock movement
type MovementKind string

const (
	MovementIn     MovementKind = "IN"
	MovementOut    MovementKind = "OUT"
	MovementRemove MovementKind = "REMOVE"
)

// IsValid reports whether the kind is one of the known movement kinds
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementIn, MovementOut, MovementRemove:
		return true
	}
	return false
}

// IsInbound reports whether the kind increases stock
func (k MovementKind) IsInbound() bool {
	return k == MovementIn
}

// AuditAction returns the audit action tag for this kind
func (k MovementKind) AuditAction() string {
	return "stock_" + strings.ToLower(string(k))
}

// StockMovement is the immutable record of a single stock change request.
// Only the Processed flag ever changes after creation, and that transition
// happens exactly once via StockMovementRepository.MarkProcessed.
type StockMovement struct {
	shared.BaseEntity
	StoreID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movements_store_product"`
	ProductID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movements_store_product"`
	SupplierID *uuid.UUID   `gorm:"type:uuid;index"`
	Kind       MovementKind `gorm:"type:varchar(16);not null;index"`
	Quantity   int64        `gorm:"not null"`
	Processed  bool         `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new unprocessed stock movement
func NewStockMovement(storeID, productID uuid.UUID, supplierID *uuid.UUID, kind MovementKind, quantity int64) (*StockMovement, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND", "Movement kind must be IN, OUT or REMOVE")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ProductID:  productID,
		SupplierID: supplierID,
		Kind:       kind,
		Quantity:   quantity,
	}, nil
}

// Delta returns the signed quantity this movement asks to apply
func (m *StockMovement) Delta() int64 {
	if m.Kind.IsInbound() {
		return m.Quantity
	}
	return -m.Quantity
}
