package customer

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByEmail retrieves customer by email (unique when set).
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// OutstandingBalance sums balance_due across the customer's unpaid
	// invoices as of the given date.
	OutstandingBalance(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error)
}
