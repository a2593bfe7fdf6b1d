package contact

import (
	"context"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines the interface for Contact persistence.
type Repository interface {
	domain.CatalogRepository[*Contact]

	// ListByCustomer retrieves contacts of one customer.
	ListByCustomer(ctx context.Context, customerID id.ID) ([]*Contact, error)

	// ClearPrimary unsets the primary flag across the customer's contacts.
	ClearPrimary(ctx context.Context, customerID id.ID) error
}
