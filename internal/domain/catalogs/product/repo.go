package product

import (
	"context"

	"ledgerhouse/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves product by SKU (unique when set).
	FindBySKU(ctx context.Context, sku string) (*Product, error)
}
