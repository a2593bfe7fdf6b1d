package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/ledger"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	journalEntryTable = "journal_entries"
	journalLinesTable = "journal_entry_lines"
)

var journalLineCols = []string{
	"line_id", "line_no", "account_id", "debit", "credit", "memo",
}

// JournalEntryRepo implements ledger.Repository. Entries are immutable
// once written: Create stores header and lines together, there is no
// update or delete.
type JournalEntryRepo struct {
	*BaseDocumentRepo[*ledger.JournalEntry]
}

func NewJournalEntryRepo(txManager *postgres.TxManager) *JournalEntryRepo {
	return &JournalEntryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			journalEntryTable,
			postgres.ExtractDBColumns[ledger.JournalEntry](),
			func() *ledger.JournalEntry { return &ledger.JournalEntry{} },
		),
	}
}

var _ ledger.Repository = (*JournalEntryRepo)(nil)

// Create inserts the entry header and all its lines.
func (r *JournalEntryRepo) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	if err := r.BaseDocumentRepo.Create(ctx, entry); err != nil {
		return err
	}

	if len(entry.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(journalLinesTable).
		Columns(append([]string{"entry_id"}, journalLineCols...)...)

	for _, l := range entry.Lines {
		q = q.Values(entry.ID, l.LineID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.Memo)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert journal lines: %w", err)
	}

	return nil
}

// GetLines loads entry lines ordered by line number.
func (r *JournalEntryRepo) GetLines(ctx context.Context, entryID id.ID) ([]ledger.JournalLine, error) {
	q := r.Builder().
		Select(journalLineCols...).
		From(journalLinesTable).
		Where(squirrel.Eq{"entry_id": entryID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]ledger.JournalLine, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get journal lines: %w", err)
	}

	return lines, nil
}

// ListBySource returns every entry carrying the given source document,
// reversal entries included, oldest first.
func (r *JournalEntryRepo) ListBySource(ctx context.Context, sourceID id.ID) ([]*ledger.JournalEntry, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"source_id": sourceID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entries := make([]*ledger.JournalEntry, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list by source: %w", err)
	}

	return entries, nil
}

func (r *JournalEntryRepo) List(ctx context.Context, filter ledger.ListFilter) (domain.ListResult[*ledger.JournalEntry], error) {
	result := domain.ListResult[*ledger.JournalEntry]{
		Items:  make([]*ledger.JournalEntry, 0),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}
	if filter.SourceType != nil {
		q = q.Where(squirrel.Eq{"source_type": *filter.SourceType})
	}
	if filter.AccountID != nil {
		q = q.Where(squirrel.Expr(
			"id IN (SELECT entry_id FROM "+journalLinesTable+" WHERE account_id = ?)",
			*filter.AccountID,
		))
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	err := r.selectPage(ctx, q, filter.OrderBy, filter.Limit, filter.Offset, &result.TotalCount, &result.Items)
	if err != nil {
		return result, err
	}

	return result, nil
}
