package partner

import (
	"context"
	"time"

	"github.com/bazaartech/backend/internal/domain/partner"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier management
type SupplierService struct {
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewSupplierService creates a SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, logger: logger}
}

// SupplierResponse is the API shape of one supplier
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, name, contactInfo string) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(name, contactInfo)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID.String()))
	response := toSupplierResponse(supplier)
	return &response, nil
}

// Update changes a supplier's name and contact info
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, name, contactInfo string) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(name, contactInfo); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := toSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers
func (s *SupplierService) List(ctx context.Context, page, pageSize int, search string) ([]SupplierResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search

	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.suppliers.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = toSupplierResponse(&suppliers[i])
	}
	return responses, total, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.suppliers.Delete(ctx, id)
}
