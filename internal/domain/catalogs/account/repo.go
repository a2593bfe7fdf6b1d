package account

import (
	"context"

	"ledgerhouse/internal/domain"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	domain.CatalogRepository[*Account]

	// ListByType retrieves active accounts of the given type ordered by code.
	ListByType(ctx context.Context, accType AccountType) ([]*Account, error)
}
