package payment

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines operations for payments and allocations.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)
	GetByNumber(ctx context.Context, number string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, paymentID id.ID) error

	GetForUpdate(ctx context.Context, paymentID id.ID) (*Payment, error)

	// Allocation operations
	CreateAllocation(ctx context.Context, a Allocation) error
	GetAllocation(ctx context.Context, allocationID id.ID) (Allocation, error)
	DeleteAllocation(ctx context.Context, allocationID id.ID) error
	ListAllocations(ctx context.Context, paymentID id.ID) ([]Allocation, error)
	ListAllocationsByInvoice(ctx context.Context, invoiceID id.ID) ([]Allocation, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error)
}

// ListFilter for filtering payments.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Method     *Method
	DateFrom   *time.Time
	DateTo     *time.Time

	// Unallocated filters payments with a positive unallocated amount
	Unallocated bool
}
