package persistence

import (
	"context"
	"errors"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockBalanceRepository implements StockBalanceRepository using GORM
type GormStockBalanceRepository struct {
	db *gorm.DB
}

// NewGormStockBalanceRepository creates a new GormStockBalanceRepository
func NewGormStockBalanceRepository(db *gorm.DB) *GormStockBalanceRepository {
	return &GormStockBalanceRepository{db: db}
}

// FindByID finds a stock balance by its ID
func (r *GormStockBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockBalance, error) {
	var balance inventory.StockBalance
	if err := r.db.WithContext(ctx).First(&balance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindByStoreAndProduct finds the balance for a (store, product) pair
func (r *GormStockBalanceRepository) FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*inventory.StockBalance, error) {
	var balance inventory.StockBalance
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

// FindAll finds stock balances matching the filter
func (r *GormStockBalanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockBalance, error) {
	var balances []inventory.StockBalance
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockBalance{}), filter)

	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Count counts stock balances matching the filter
func (r *GormStockBalanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockBalance{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetOrCreate returns the balance for the pair, inserting a zero row when
// none exists. ON CONFLICT DO NOTHING resolves concurrent creators; the
// loser of the race re-reads the winner's row.
func (r *GormStockBalanceRepository) GetOrCreate(ctx context.Context, storeID, productID uuid.UUID) (*inventory.StockBalance, error) {
	balance, err := r.FindByStoreAndProduct(ctx, storeID, productID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewStockBalance(storeID, productID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(fresh)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return fresh, nil
	}

	// Lost the insert race; fetch the row the winner created
	return r.FindByStoreAndProduct(ctx, storeID, productID)
}

// Save creates or updates a stock balance
func (r *GormStockBalanceRepository) Save(ctx context.Context, balance *inventory.StockBalance) error {
	return r.db.WithContext(ctx).Save(balance).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockBalanceRepository) SaveWithLock(ctx context.Context, balance *inventory.StockBalance) error {
	result := r.db.WithContext(ctx).
		Model(balance).
		Where("id = ? AND version = ?", balance.ID, balance.Version-1).
		Updates(map[string]interface{}{
			"quantity":   balance.Quantity,
			"version":    balance.Version,
			"updated_at": balance.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Stock balance was modified by another transaction")
	}
	return nil
}

func (r *GormStockBalanceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockSortFields, "stock_balances.updated_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormStockBalanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	needsJoins := filter.Search != "" ||
		filter.OrderBy == "product" || filter.OrderBy == "store"
	if needsJoins {
		query = query.
			Joins("JOIN products ON products.id = stock_balances.product_id").
			Joins("JOIN stores ON stores.id = stock_balances.store_id")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("products.name ILIKE ? OR products.sku ILIKE ? OR stores.name ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "store_id":
			query = query.Where("stock_balances.store_id = ?", value)
		case "product_id":
			query = query.Where("stock_balances.product_id = ?", value)
		case "status":
			switch value {
			case "out_of_stock":
				query = query.Where("stock_balances.quantity = 0")
			case "low_stock":
				query = query.Where("stock_balances.quantity > 0 AND stock_balances.quantity < ?", inventory.LowStockThreshold)
			case "in_stock":
				query = query.Where("stock_balances.quantity >= ?", inventory.LowStockThreshold)
			}
		case "supplier_id":
			query = query.Where(
				"EXISTS (SELECT 1 FROM stock_movements m WHERE m.store_id = stock_balances.store_id AND m.product_id = stock_balances.product_id AND m.supplier_id = ?)",
				value)
		case "date_from":
			query = query.Where(
				"EXISTS (SELECT 1 FROM stock_movements m WHERE m.store_id = stock_balances.store_id AND m.product_id = stock_balances.product_id AND m.created_at >= ?)",
				value)
		case "date_to":
			query = query.Where(
				"EXISTS (SELECT 1 FROM stock_movements m WHERE m.store_id = stock_balances.store_id AND m.product_id = stock_balances.product_id AND m.created_at <= ?)",
				value)
		}
	}

	return query
}

// Ensure GormStockBalanceRepository implements StockBalanceRepository
var _ inventory.StockBalanceRepository = (*GormStockBalanceRepository)(nil)
