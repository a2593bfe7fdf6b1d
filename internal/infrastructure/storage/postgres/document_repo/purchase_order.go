package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/purchaseorder"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	purchaseOrderTable      = "doc_purchase_orders"
	purchaseOrderLinesTable = "doc_purchase_order_lines"
)

var purchaseOrderLineCols = []string{
	"line_id", "line_no", "product_id", "description",
	"quantity", "received_quantity", "unit_price",
	"discount_percent", "tax_percent",
	"amount", "discount_amount", "tax_amount", "total_amount",
}

// PurchaseOrderRepo implements purchaseorder.Repository.
type PurchaseOrderRepo struct {
	*BaseDocumentRepo[*purchaseorder.PurchaseOrder]
}

func NewPurchaseOrderRepo(txManager *postgres.TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseOrderTable,
			postgres.ExtractDBColumns[purchaseorder.PurchaseOrder](),
			func() *purchaseorder.PurchaseOrder { return &purchaseorder.PurchaseOrder{} },
		),
	}
}

var _ purchaseorder.Repository = (*PurchaseOrderRepo)(nil)

func (r *PurchaseOrderRepo) GetLines(ctx context.Context, docID id.ID) ([]purchaseorder.Line, error) {
	q := r.Builder().
		Select(purchaseOrderLineCols...).
		From(purchaseOrderLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]purchaseorder.Line, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}

	return lines, nil
}

func (r *PurchaseOrderRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchaseorder.Line) error {
	querier := r.querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(purchaseOrderLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete purchase order lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseOrderLinesTable).
		Columns(append([]string{"document_id"}, purchaseOrderLineCols...)...)

	for _, l := range lines {
		q = q.Values(
			docID, l.LineID, l.LineNo, l.ProductID, l.Description,
			l.Quantity, l.ReceivedQuantity, l.UnitPrice,
			l.DiscountPercent, l.TaxPercent,
			l.Amount, l.DiscountAmount, l.TaxAmount, l.TotalAmount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase order lines: %w", err)
	}

	return nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, filter purchaseorder.ListFilter) (domain.ListResult[*purchaseorder.PurchaseOrder], error) {
	result := domain.ListResult[*purchaseorder.PurchaseOrder]{
		Items:  make([]*purchaseorder.PurchaseOrder, 0),
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
	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
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
