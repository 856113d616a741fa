package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields and maps API names to column expressions. Returns the defaultField
// when the input is empty or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if column, ok := allowedFields[trimmed]; ok {
		return column
	}
	return defaultField
}

// StockSortFields maps allowed stock list sort keys to their column expressions
var StockSortFields = map[string]string{
	"quantity":   "stock_balances.quantity",
	"product":    "products.name",
	"store":      "stores.name",
	"updated_at": "stock_balances.updated_at",
	"created_at": "stock_balances.created_at",
}

// MovementSortFields maps allowed movement list sort keys to columns
var MovementSortFields = map[string]string{
	"created_at": "created_at",
	"quantity":   "quantity",
	"kind":       "kind",
}
