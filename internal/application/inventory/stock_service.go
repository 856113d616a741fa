package inventory

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/bazaartech/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService is the read-only API over stock balances. Point lookups
// go through the stock cache; cache failures fall back to the database.
type StockService struct {
	balances inventory.StockBalanceRepository
	cache    cache.StockCache
	logger   *zap.Logger
}

// NewStockService creates a StockService
func NewStockService(balances inventory.StockBalanceRepository, stockCache cache.StockCache, logger *zap.Logger) *StockService {
	return &StockService{
		balances: balances,
		cache:    stockCache,
		logger:   logger,
	}
}

// GetByStoreAndProduct retrieves the balance for one (store, product) pair.
// A cached quantity answers the lookup without touching the database; on a
// miss the row is read and the cache refreshed.
func (s *StockService) GetByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*StockResponse, error) {
	if quantity, found := s.GetCachedQuantity(ctx, storeID, productID); found {
		// cache entries hold only the quantity; identity fields come
		// from the database path
		return &StockResponse{
			StoreID:   storeID,
			ProductID: productID,
			Quantity:  quantity,
			Status:    inventory.StatusForQuantity(quantity),
		}, nil
	}

	balance, err := s.balances.FindByStoreAndProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, storeID, productID, balance.Quantity); cacheErr != nil {
		s.logger.Debug("failed to refresh stock cache", zap.Error(cacheErr))
	}

	response := ToStockResponse(balance)
	return &response, nil
}

// GetCachedQuantity returns the cached quantity for a pair when present
func (s *StockService) GetCachedQuantity(ctx context.Context, storeID, productID uuid.UUID) (int64, bool) {
	quantity, found, err := s.cache.Get(ctx, storeID, productID)
	if err != nil {
		s.logger.Debug("stock cache read failed", zap.Error(err))
		return 0, false
	}
	return quantity, found
}

// List retrieves stock balances matching the filter
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]StockResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "updated_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.StoreID != nil {
		domainFilter.Filters["store_id"] = *filter.StoreID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	balances, err := s.balances.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.balances.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockResponses(balances), total, nil
}
