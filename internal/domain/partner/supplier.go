package partner

import (
	"strings"

	"github.com/bazaartech/backend/internal/domain/shared"
)

// Supplier represents an external party that delivers stock
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(255);not null"`
	ContactInfo string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactInfo string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactInfo:       contactInfo,
	}, nil
}

// Update changes the supplier's mutable fields
func (s *Supplier) Update(name, contactInfo string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.ContactInfo = contactInfo
	s.IncrementVersion()
	return nil
}
