package location

import (
	"context"

	"ledgerhouse/internal/domain"
)

// Repository defines the interface for Location persistence.
type Repository interface {
	domain.CatalogRepository[*Location]

	// GetDefault retrieves the default location, if any.
	GetDefault(ctx context.Context) (*Location, error)
}
