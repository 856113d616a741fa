package partner

import (
	"context"
	"time"

	"github.com/bazaartech/backend/internal/domain/partner"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService handles store management
type StoreService struct {
	stores partner.StoreRepository
	logger *zap.Logger
}

// NewStoreService creates a StoreService
func NewStoreService(stores partner.StoreRepository, logger *zap.Logger) *StoreService {
	return &StoreService{stores: stores, logger: logger}
}

// StoreResponse is the API shape of one store
type StoreResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStoreResponse(s *partner.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create adds a store
func (s *StoreService) Create(ctx context.Context, name, location string) (*StoreResponse, error) {
	store, err := partner.NewStore(name, location)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	s.logger.Info("store created", zap.String("store_id", store.ID.String()))
	response := toStoreResponse(store)
	return &response, nil
}

// Update changes a store's name and location
func (s *StoreService) Update(ctx context.Context, id uuid.UUID, name, location string) (*StoreResponse, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.Update(name, location); err != nil {
		return nil, err
	}
	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	response := toStoreResponse(store)
	return &response, nil
}

// GetByID retrieves one store
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toStoreResponse(store)
	return &response, nil
}

// List retrieves stores
func (s *StoreService) List(ctx context.Context, page, pageSize int, search string) ([]StoreResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search

	stores, err := s.stores.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stores.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = toStoreResponse(&stores[i])
	}
	return responses, total, nil
}

// Delete removes a store
func (s *StoreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.stores.FindByID(ctx, id); err != nil {
		return err
	}
	return s.stores.Delete(ctx, id)
}
