package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/quote"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	quoteTable      = "doc_quotes"
	quoteLinesTable = "doc_quote_lines"
)

var quoteLineCols = []string{
	"line_id", "line_no", "product_id", "description",
	"quantity", "unit_price", "discount_percent", "tax_percent",
	"amount", "discount_amount", "tax_amount", "total_amount",
}

// QuoteRepo implements quote.Repository.
type QuoteRepo struct {
	*BaseDocumentRepo[*quote.Quote]
}

func NewQuoteRepo(txManager *postgres.TxManager) *QuoteRepo {
	return &QuoteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			quoteTable,
			postgres.ExtractDBColumns[quote.Quote](),
			func() *quote.Quote { return &quote.Quote{} },
		),
	}
}

var _ quote.Repository = (*QuoteRepo)(nil)

func (r *QuoteRepo) GetLines(ctx context.Context, docID id.ID) ([]quote.Line, error) {
	q := r.Builder().
		Select(quoteLineCols...).
		From(quoteLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]quote.Line, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get quote lines: %w", err)
	}

	return lines, nil
}

func (r *QuoteRepo) SaveLines(ctx context.Context, docID id.ID, lines []quote.Line) error {
	querier := r.querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(quoteLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete quote lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(quoteLinesTable).
		Columns(append([]string{"document_id"}, quoteLineCols...)...)

	for _, l := range lines {
		q = q.Values(
			docID, l.LineID, l.LineNo, l.ProductID, l.Description,
			l.Quantity, l.UnitPrice, l.DiscountPercent, l.TaxPercent,
			l.Amount, l.DiscountAmount, l.TaxAmount, l.TotalAmount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert quote lines: %w", err)
	}

	return nil
}

func (r *QuoteRepo) List(ctx context.Context, filter quote.ListFilter) (domain.ListResult[*quote.Quote], error) {
	result := domain.ListResult[*quote.Quote]{
		Items:  make([]*quote.Quote, 0),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
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
