package partner

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StoreRepository persists stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
