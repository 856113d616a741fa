package catalog

import (
	"strings"

	"github.com/bazaartech/backend/internal/domain/shared"
)

// Product represents a product in the catalog
type Product struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(255);not null"`
	SKU         string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, sku, description string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               strings.ToUpper(sku),
		Description:       description,
	}, nil
}

// Update changes the product's mutable fields
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.IncrementVersion()
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 255 characters")
	}
	return nil
}

func validateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 64 characters")
	}
	return nil
}
