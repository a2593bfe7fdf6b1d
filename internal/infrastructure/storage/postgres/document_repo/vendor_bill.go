package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/vendorbill"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	vendorBillTable      = "doc_vendor_bills"
	vendorBillLinesTable = "doc_vendor_bill_lines"
)

var vendorBillLineCols = []string{
	"line_id", "line_no", "product_id", "expense_account_id", "description",
	"quantity", "unit_price", "discount_percent", "tax_percent",
	"amount", "discount_amount", "tax_amount", "total_amount",
}

// VendorBillRepo implements vendorbill.Repository.
type VendorBillRepo struct {
	*BaseDocumentRepo[*vendorbill.VendorBill]
}

func NewVendorBillRepo(txManager *postgres.TxManager) *VendorBillRepo {
	return &VendorBillRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			vendorBillTable,
			postgres.ExtractDBColumns[vendorbill.VendorBill](),
			func() *vendorbill.VendorBill { return &vendorbill.VendorBill{} },
		),
	}
}

var _ vendorbill.Repository = (*VendorBillRepo)(nil)

func (r *VendorBillRepo) GetLines(ctx context.Context, docID id.ID) ([]vendorbill.Line, error) {
	q := r.Builder().
		Select(vendorBillLineCols...).
		From(vendorBillLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]vendorbill.Line, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get vendor bill lines: %w", err)
	}

	return lines, nil
}

func (r *VendorBillRepo) SaveLines(ctx context.Context, docID id.ID, lines []vendorbill.Line) error {
	querier := r.querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(vendorBillLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete vendor bill lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(vendorBillLinesTable).
		Columns(append([]string{"document_id"}, vendorBillLineCols...)...)

	for _, l := range lines {
		q = q.Values(
			docID, l.LineID, l.LineNo, l.ProductID, l.ExpenseAccountID, l.Description,
			l.Quantity, l.UnitPrice, l.DiscountPercent, l.TaxPercent,
			l.Amount, l.DiscountAmount, l.TaxAmount, l.TotalAmount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert vendor bill lines: %w", err)
	}

	return nil
}

func (r *VendorBillRepo) List(ctx context.Context, filter vendorbill.ListFilter) (domain.ListResult[*vendorbill.VendorBill], error) {
	result := domain.ListResult[*vendorbill.VendorBill]{
		Items:  make([]*vendorbill.VendorBill, 0),
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
	if filter.VendorID != nil {
		q = q.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
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
