package inventory

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovementService is the write path into the reconciliation pipeline.
// Creating a movement persists the immutable record first, then
// dispatches its reconciliation; the create succeeds regardless of the
// reconciliation outcome.
type MovementService struct {
	movements  inventory.StockMovementRepository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewMovementService creates a MovementService
func NewMovementService(movements inventory.StockMovementRepository, dispatcher *Dispatcher, logger *zap.Logger) *MovementService {
	return &MovementService{
		movements:  movements,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create persists a new movement and dispatches its reconciliation
func (s *MovementService) Create(ctx context.Context, input CreateMovementInput) (*MovementResponse, error) {
	movement, err := inventory.NewStockMovement(input.StoreID, input.ProductID, input.SupplierID, input.Kind, input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.movements.Save(ctx, movement); err != nil {
		return nil, err
	}

	s.logger.Info("movement created",
		zap.String("movement_id", movement.ID.String()),
		zap.String("kind", string(movement.Kind)),
		zap.Int64("quantity", movement.Quantity),
	)

	s.dispatcher.Submit(ctx, movement.ID, input.UserID)

	response := ToMovementResponse(movement)
	return &response, nil
}

// GetByID retrieves one movement
func (s *MovementService) GetByID(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMovementResponse(movement)
	return &response, nil
}

// List retrieves movements matching the filter
func (s *MovementService) List(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
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
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}
	if filter.Processed != nil {
		domainFilter.Filters["processed"] = *filter.Processed
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	movements, err := s.movements.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movements.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}
