package partner

import (
	"strings"

	"github.com/bazaartech/backend/internal/domain/shared"
)

// Store represents a physical or virtual location that holds stock
type Store struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(255);not null"`
	Location string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store
func NewStore(name, location string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
	}, nil
}

// Update changes the store's mutable fields
func (s *Store) Update(name, location string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	s.Name = name
	s.Location = location
	s.IncrementVersion()
	return nil
}
