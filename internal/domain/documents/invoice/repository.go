// Package invoice provides the Invoice document repository.
package invoice

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines operations for invoice documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Invoice) error
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	Update(ctx context.Context, doc *Invoice) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Invoice, error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time

	// OverdueAsOf filters invoices with open balance due before this date
	OverdueAsOf *time.Time
}
