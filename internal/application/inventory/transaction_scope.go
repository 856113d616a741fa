package inventory

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. Repository calls made through the scoped repositories
// commit or roll back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the inventory repositories bound to
// the current transaction.
type TransactionalRepositories interface {
	Movements() inventory.StockMovementRepository
	Balances() inventory.StockBalanceRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	movements inventory.StockMovementRepository
	balances  inventory.StockBalanceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(movements inventory.StockMovementRepository, balances inventory.StockBalanceRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{movements: movements, balances: balances}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movements
}

// Balances returns the balance repository
func (s *NoOpTransactionScope) Balances() inventory.StockBalanceRepository {
	return s.balances
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
