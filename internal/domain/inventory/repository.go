package inventory

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockMovementRepository persists stock movements
type StockMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, movement *StockMovement) error

	// MarkProcessed flips processed from false to true with a single
	// compare-and-swap update. It returns shared.ErrAlreadyProcessed when
	// no row transitioned, which makes duplicate delivery a no-op.
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

// StockBalanceRepository persists stock balances
type StockBalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockBalance, error)
	FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*StockBalance, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockBalance, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GetOrCreate returns the balance for the pair, inserting a zero row
	// when none exists. Concurrent creators are resolved by the unique
	// index on (store_id, product_id).
	GetOrCreate(ctx context.Context, storeID, productID uuid.UUID) (*StockBalance, error)

	Save(ctx context.Context, balance *StockBalance) error

	// SaveWithLock persists the balance only if the stored version still
	// matches; a lost race returns an OPTIMISTIC_LOCK_FAILED domain error.
	SaveWithLock(ctx context.Context, balance *StockBalance) error
}
