package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable      = "doc_invoices"
	invoiceLinesTable = "doc_invoice_lines"
)

var invoiceLineCols = []string{
	"line_id", "line_no", "product_id", "description",
	"quantity", "unit_price", "discount_percent", "tax_percent",
	"amount", "discount_amount", "tax_amount", "total_amount",
}

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			invoiceTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

// GetLines loads invoice lines ordered by line number.
func (r *InvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	q := r.Builder().
		Select(invoiceLineCols...).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]invoice.Line, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the document's lines.
func (r *InvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	querier := r.querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(invoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLinesTable).
		Columns(append([]string{"document_id"}, invoiceLineCols...)...)

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
		return fmt.Errorf("insert invoice lines: %w", err)
	}

	return nil
}

// List returns invoices matching the filter.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Items:  make([]*invoice.Invoice, 0),
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
	if filter.OverdueAsOf != nil {
		q = q.Where("balance_due > 0").
			Where(squirrel.Lt{"due_date": *filter.OverdueAsOf}).
			Where(squirrel.NotEq{"status": []string{
				string(invoice.StatusDraft),
				string(invoice.StatusVoid),
				string(invoice.StatusPaid),
			}})
	}

	err := r.selectPage(ctx, q, filter.OrderBy, filter.Limit, filter.Offset, &result.TotalCount, &result.Items)
	if err != nil {
		return result, err
	}

	return result, nil
}
