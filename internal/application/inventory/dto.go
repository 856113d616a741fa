package inventory

import (
	"fmt"
	"time"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// ReconcileResult describes the outcome of reconciling one movement
type ReconcileResult struct {
	MovementID       uuid.UUID              `json:"movement_id"`
	StoreID          uuid.UUID              `json:"store_id"`
	ProductID        uuid.UUID              `json:"product_id"`
	Kind             inventory.MovementKind `json:"kind"`
	Requested        int64                  `json:"requested"`
	Applied          int64                  `json:"applied"`
	NewQuantity      int64                  `json:"new_quantity"`
	Actor            string                 `json:"actor"`
	AlreadyProcessed bool                   `json:"already_processed"`
	Summary          string                 `json:"summary"`
}

func buildSummary(kind inventory.MovementKind, requested, applied, newQuantity int64, actor string) string {
	if requested != applied {
		return fmt.Sprintf("%s %d requested by %s, applied %d (clamped), balance now %d",
			kind, requested, actor, applied, newQuantity)
	}
	return fmt.Sprintf("%s %d applied by %s, balance now %d", kind, applied, actor, newQuantity)
}

// CreateMovementInput is the validated input for creating a movement
type CreateMovementInput struct {
	StoreID    uuid.UUID
	ProductID  uuid.UUID
	SupplierID *uuid.UUID
	Kind       inventory.MovementKind
	Quantity   int64
	UserID     *uuid.UUID
}

// MovementResponse is the API shape of one stock movement
type MovementResponse struct {
	ID         uuid.UUID              `json:"id"`
	StoreID    uuid.UUID              `json:"store_id"`
	ProductID  uuid.UUID              `json:"product_id"`
	SupplierID *uuid.UUID             `json:"supplier_id,omitempty"`
	Kind       inventory.MovementKind `json:"kind"`
	Quantity   int64                  `json:"quantity"`
	Processed  bool                   `json:"processed"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ToMovementResponse converts a domain movement to its API shape
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		StoreID:    m.StoreID,
		ProductID:  m.ProductID,
		SupplierID: m.SupplierID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		Processed:  m.Processed,
		CreatedAt:  m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of domain movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}

// MovementListFilter narrows movement list queries
type MovementListFilter struct {
	Page       int
	PageSize   int
	StoreID    *uuid.UUID
	ProductID  *uuid.UUID
	SupplierID *uuid.UUID
	Kind       string
	Processed  *bool
	DateFrom   *time.Time
	DateTo     *time.Time
	OrderBy    string
	OrderDir   string
}

// StockResponse is the API shape of one stock balance
type StockResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStockResponse converts a domain balance to its API shape
func ToStockResponse(b *inventory.StockBalance) StockResponse {
	return StockResponse{
		ID:        b.ID,
		StoreID:   b.StoreID,
		ProductID: b.ProductID,
		Quantity:  b.Quantity,
		Status:    b.Status(),
		UpdatedAt: b.UpdatedAt,
	}
}

// ToStockResponses converts a slice of domain balances
func ToStockResponses(balances []inventory.StockBalance) []StockResponse {
	responses := make([]StockResponse, len(balances))
	for i := range balances {
		responses[i] = ToStockResponse(&balances[i])
	}
	return responses
}

// StockListFilter narrows stock list queries
type StockListFilter struct {
	Page       int
	PageSize   int
	StoreID    *uuid.UUID
	ProductID  *uuid.UUID
	SupplierID *uuid.UUID
	Status     string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	OrderBy    string
	OrderDir   string
}
