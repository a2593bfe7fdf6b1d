package ledger

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
)

// Repository defines operations for journal entries.
type Repository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	GetByID(ctx context.Context, entryID id.ID) (*JournalEntry, error)
	GetByNumber(ctx context.Context, number string) (*JournalEntry, error)

	GetLines(ctx context.Context, entryID id.ID) ([]JournalLine, error)

	// ListBySource returns entries generated from one document,
	// reversals included.
	ListBySource(ctx context.Context, sourceID id.ID) ([]*JournalEntry, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*JournalEntry], error)
}

// ListFilter for filtering journal entries.
type ListFilter struct {
	domain.ListFilter

	SourceType *SourceType
	AccountID  *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
