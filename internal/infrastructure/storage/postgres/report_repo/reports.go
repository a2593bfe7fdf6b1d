// Package report_repo provides the PostgreSQL aggregation queries
// behind the financial reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/reports"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository with raw SQL. Reports read
// whole tables at once, so these queries aggregate in the database
// instead of loading documents into memory.
type ReportRepo struct {
	txManager *postgres.TxManager
}

func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

const accountBalanceSelect = `
	SELECT
		a.id   AS account_id,
		a.code AS account_code,
		a.name AS account_name,
		a.type AS account_type,
		COALESCE(SUM(l.debit), 0)  AS debit,
		COALESCE(SUM(l.credit), 0) AS credit
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.id = l.entry_id
	JOIN cat_accounts a    ON a.id = l.account_id
`

// AccountBalances sums debit and credit per account over all entries
// dated on or before asOf.
func (r *ReportRepo) AccountBalances(ctx context.Context, asOf time.Time) ([]reports.AccountBalance, error) {
	query := accountBalanceSelect + `
	WHERE e.date <= $1
	GROUP BY a.id, a.code, a.name, a.type
	ORDER BY a.code`

	balances := make([]reports.AccountBalance, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, query, asOf); err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}

	return balances, nil
}

// AccountActivity sums debit and credit per account within [start, end].
func (r *ReportRepo) AccountActivity(ctx context.Context, start, end time.Time) ([]reports.AccountBalance, error) {
	query := accountBalanceSelect + `
	WHERE e.date >= $1 AND e.date <= $2
	GROUP BY a.id, a.code, a.name, a.type
	ORDER BY a.code`

	balances := make([]reports.AccountBalance, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, query, start, end); err != nil {
		return nil, fmt.Errorf("account activity: %w", err)
	}

	return balances, nil
}

// OpenInvoices returns non-void invoices with an outstanding balance
// dated on or before asOf.
func (r *ReportRepo) OpenInvoices(ctx context.Context, asOf time.Time) ([]reports.OpenInvoice, error) {
	query := `
	SELECT
		i.id          AS invoice_id,
		i.customer_id AS customer_id,
		c.name        AS customer_name,
		i.number      AS number,
		i.due_date    AS due_date,
		i.balance_due AS balance_due
	FROM doc_invoices i
	JOIN cat_customers c ON c.id = i.customer_id
	WHERE i.balance_due > 0
	  AND i.status NOT IN ('draft', 'void')
	  AND i.deletion_mark = FALSE
	  AND i.date <= $1
	ORDER BY c.name, i.due_date, i.number`

	invoices := make([]reports.OpenInvoice, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &invoices, query, asOf); err != nil {
		return nil, fmt.Errorf("open invoices: %w", err)
	}

	return invoices, nil
}

// CustomerDocs returns invoices and payments of one customer within
// [start, end]. Invoices carry positive amounts, payments negative.
func (r *ReportRepo) CustomerDocs(ctx context.Context, customerID id.ID, start, end time.Time) ([]reports.StatementDoc, error) {
	query := `
	SELECT date, doc_type, number, amount FROM (
		SELECT i.date, 'invoice' AS doc_type, i.number, i.total_amount AS amount
		FROM doc_invoices i
		WHERE i.customer_id = $1
		  AND i.status NOT IN ('draft', 'void')
		  AND i.deletion_mark = FALSE
		UNION ALL
		SELECT p.date, 'payment' AS doc_type, p.number, -p.amount AS amount
		FROM payments p
		WHERE p.customer_id = $1
		  AND p.deletion_mark = FALSE
	) docs
	WHERE date >= $2 AND date <= $3
	ORDER BY date, number`

	docs := make([]reports.StatementDoc, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &docs, query, customerID, start, end); err != nil {
		return nil, fmt.Errorf("customer docs: %w", err)
	}

	return docs, nil
}

// CustomerBalanceBefore returns invoiced minus paid over all documents
// dated strictly before the given date.
func (r *ReportRepo) CustomerBalanceBefore(ctx context.Context, customerID id.ID, before time.Time) (types.Money, error) {
	query := `
	SELECT
		COALESCE((
			SELECT SUM(i.total_amount)
			FROM doc_invoices i
			WHERE i.customer_id = $1
			  AND i.status NOT IN ('draft', 'void')
			  AND i.deletion_mark = FALSE
			  AND i.date < $2
		), 0)
		-
		COALESCE((
			SELECT SUM(p.amount)
			FROM payments p
			WHERE p.customer_id = $1
			  AND p.deletion_mark = FALSE
			  AND p.date < $2
		), 0) AS balance`

	var balance types.Money
	if err := r.querier(ctx).QueryRow(ctx, query, customerID, before).Scan(&balance); err != nil {
		return types.Zero(), fmt.Errorf("customer balance: %w", err)
	}

	return balance, nil
}

// RevenueByMonth returns per-month invoiced and collected totals within
// [start, end].
func (r *ReportRepo) RevenueByMonth(ctx context.Context, start, end time.Time) ([]reports.MonthlyRevenue, error) {
	query := `
	WITH invoiced AS (
		SELECT
			EXTRACT(YEAR FROM i.date)::int  AS year,
			EXTRACT(MONTH FROM i.date)::int AS month,
			SUM(i.total_amount)             AS invoiced
		FROM doc_invoices i
		WHERE i.status NOT IN ('draft', 'void')
		  AND i.deletion_mark = FALSE
		  AND i.date >= $1 AND i.date <= $2
		GROUP BY 1, 2
	), collected AS (
		SELECT
			EXTRACT(YEAR FROM p.date)::int  AS year,
			EXTRACT(MONTH FROM p.date)::int AS month,
			SUM(p.amount)                   AS collected
		FROM payments p
		WHERE p.deletion_mark = FALSE
		  AND p.date >= $1 AND p.date <= $2
		GROUP BY 1, 2
	)
	SELECT
		COALESCE(i.year, c.year)   AS year,
		COALESCE(i.month, c.month) AS month,
		COALESCE(i.invoiced, 0)    AS invoiced,
		COALESCE(c.collected, 0)   AS collected
	FROM invoiced i
	FULL OUTER JOIN collected c ON c.year = i.year AND c.month = i.month
	ORDER BY 1, 2`

	months := make([]reports.MonthlyRevenue, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &months, query, start, end); err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}

	return months, nil
}

// CustomerName resolves a customer's display name.
func (r *ReportRepo) CustomerName(ctx context.Context, customerID id.ID) (string, error) {
	var name string
	query := `SELECT name FROM cat_customers WHERE id = $1`

	if err := pgxscan.Get(ctx, r.querier(ctx), &name, query, customerID); err != nil {
		if pgxscan.NotFound(err) {
			return "", apperror.NewNotFound("customer", customerID.String())
		}
		return "", fmt.Errorf("customer name: %w", err)
	}

	return name, nil
}
