package persistence

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/audit"
	"github.com/bazaartech/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAuditEntryRepository implements EntryRepository using GORM
type GormAuditEntryRepository struct {
	db *gorm.DB
}

// NewGormAuditEntryRepository creates a new GormAuditEntryRepository
func NewGormAuditEntryRepository(db *gorm.DB) *GormAuditEntryRepository {
	return &GormAuditEntryRepository{db: db}
}

// Save appends an audit entry
func (r *GormAuditEntryRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindAll finds audit entries matching the filter, newest first
func (r *GormAuditEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&audit.Entry{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts audit entries matching the filter
func (r *GormAuditEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&audit.Entry{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "store_id":
			query = query.Where("store_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "date_from":
			query = query.Where("created_at >= ?", value)
		case "date_to":
			query = query.Where("created_at <= ?", value)
		}
	}
	return query
}

// Ensure GormAuditEntryRepository implements EntryRepository
var _ audit.EntryRepository = (*GormAuditEntryRepository)(nil)
