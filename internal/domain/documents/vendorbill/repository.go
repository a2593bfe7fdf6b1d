package vendorbill

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines operations for vendor bill documents.
type Repository interface {
	Create(ctx context.Context, doc *VendorBill) error
	GetByID(ctx context.Context, docID id.ID) (*VendorBill, error)
	GetByNumber(ctx context.Context, number string) (*VendorBill, error)
	Update(ctx context.Context, doc *VendorBill) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*VendorBill], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*VendorBill, error)
}

// ListFilter for filtering vendor bills.
type ListFilter struct {
	domain.ListFilter

	VendorID *id.ID
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}
