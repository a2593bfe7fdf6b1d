package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/payment"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	paymentTable    = "payments"
	allocationTable = "payment_allocations"
)

var allocationCols = []string{
	"id", "payment_id", "invoice_id", "amount", "allocated_at",
}

// PaymentRepo implements payment.Repository.
type PaymentRepo struct {
	*BaseDocumentRepo[*payment.Payment]
}

func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			paymentTable,
			postgres.ExtractDBColumns[payment.Payment](),
			func() *payment.Payment { return &payment.Payment{} },
		),
	}
}

var _ payment.Repository = (*PaymentRepo)(nil)

// CreateAllocation inserts one allocation row.
func (r *PaymentRepo) CreateAllocation(ctx context.Context, a payment.Allocation) error {
	q := r.Builder().
		Insert(allocationTable).
		Columns(allocationCols...).
		Values(a.ID, a.PaymentID, a.InvoiceID, a.Amount, a.AllocatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert allocation: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}

	return nil
}

func (r *PaymentRepo) GetAllocation(ctx context.Context, allocationID id.ID) (payment.Allocation, error) {
	var a payment.Allocation
	q := r.Builder().
		Select(allocationCols...).
		From(allocationTable).
		Where(squirrel.Eq{"id": allocationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return a, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return a, apperror.NewNotFound("allocation", allocationID.String())
		}
		return a, fmt.Errorf("get allocation: %w", err)
	}

	return a, nil
}

func (r *PaymentRepo) DeleteAllocation(ctx context.Context, allocationID id.ID) error {
	q := r.Builder().
		Delete(allocationTable).
		Where(squirrel.Eq{"id": allocationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete allocation: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("allocation", allocationID.String())
	}

	return nil
}

func (r *PaymentRepo) ListAllocations(ctx context.Context, paymentID id.ID) ([]payment.Allocation, error) {
	return r.listAllocationsBy(ctx, squirrel.Eq{"payment_id": paymentID})
}

func (r *PaymentRepo) ListAllocationsByInvoice(ctx context.Context, invoiceID id.ID) ([]payment.Allocation, error) {
	return r.listAllocationsBy(ctx, squirrel.Eq{"invoice_id": invoiceID})
}

func (r *PaymentRepo) listAllocationsBy(ctx context.Context, cond squirrel.Eq) ([]payment.Allocation, error) {
	q := r.Builder().
		Select(allocationCols...).
		From(allocationTable).
		Where(cond).
		OrderBy("allocated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	allocations := make([]payment.Allocation, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &allocations, sql, args...); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	return allocations, nil
}

func (r *PaymentRepo) List(ctx context.Context, filter payment.ListFilter) (domain.ListResult[*payment.Payment], error) {
	result := domain.ListResult[*payment.Payment]{
		Items:  make([]*payment.Payment, 0),
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
	if filter.Method != nil {
		q = q.Where(squirrel.Eq{"method": *filter.Method})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Unallocated {
		q = q.Where("unallocated_amount > 0")
	}

	err := r.selectPage(ctx, q, filter.OrderBy, filter.Limit, filter.Offset, &result.TotalCount, &result.Items)
	if err != nil {
		return result, err
	}

	return result, nil
}
