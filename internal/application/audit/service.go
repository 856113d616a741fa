package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bazaartech/backend/internal/domain/audit"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxPageSize caps how many audit entries a single list call returns
const MaxPageSize = 100

// Service records and queries audit entries. Record is best-effort: the
// caller's operation must never fail because the audit trail could not
// be written.
type Service struct {
	repo   audit.EntryRepository
	logger *zap.Logger
}

// NewService creates a new audit Service
func NewService(repo audit.EntryRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an audit entry, logging and swallowing any failure
func (s *Service) Record(ctx context.Context, entry *audit.Entry) {
	if entry == nil {
		return
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			zap.String("action", entry.Action),
			zap.String("actor", entry.Actor),
			zap.Error(err),
		)
	}
}

// RecordMovement appends the audit entry for a reconciled stock movement
func (s *Service) RecordMovement(ctx context.Context, action, actor string, storeID, productID uuid.UUID, userID *uuid.UUID, details audit.MovementDetails) {
	entry, err := audit.NewMovementEntry(action, actor, storeID, productID, userID, details)
	if err != nil {
		s.logger.Error("failed to build audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}
	s.Record(ctx, entry)
}

// ListFilter narrows audit queries
type ListFilter struct {
	Page      int
	PageSize  int
	Action    string
	UserID    *uuid.UUID
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// EntryResponse is the API shape of one audit entry
type EntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	StoreID   *uuid.UUID      `json:"store_id,omitempty"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// List returns audit entries newest first, capped at MaxPageSize
func (s *Service) List(ctx context.Context, filter ListFilter) ([]EntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	if filter.StoreID != nil {
		domainFilter.Filters["store_id"] = *filter.StoreID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	entries, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = EntryResponse{
			ID:        entry.ID,
			Action:    entry.Action,
			StoreID:   entry.StoreID,
			ProductID: entry.ProductID,
			UserID:    entry.UserID,
			Actor:     entry.Actor,
			Details:   json.RawMessage(entry.Details),
			CreatedAt: entry.CreatedAt,
		}
	}
	return responses, total, nil
}
