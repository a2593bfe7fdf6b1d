package quote

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines operations for quote documents.
type Repository interface {
	Create(ctx context.Context, doc *Quote) error
	GetByID(ctx context.Context, docID id.ID) (*Quote, error)
	GetByNumber(ctx context.Context, number string) (*Quote, error)
	Update(ctx context.Context, doc *Quote) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*Quote, error)
}

// ListFilter for filtering quotes.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}
