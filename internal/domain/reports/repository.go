package reports

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/account"
)

// AccountBalance is an account's summed debits and credits, produced by
// aggregation queries over journal lines.
type AccountBalance struct {
	AccountID   id.ID               `db:"account_id"`
	AccountCode string              `db:"account_code"`
	AccountName string              `db:"account_name"`
	AccountType account.AccountType `db:"account_type"`
	Debit       types.Money         `db:"debit"`
	Credit      types.Money         `db:"credit"`
}

// OpenInvoice is an invoice with an outstanding balance.
type OpenInvoice struct {
	InvoiceID    id.ID       `db:"invoice_id"`
	CustomerID   id.ID       `db:"customer_id"`
	CustomerName string      `db:"customer_name"`
	Number       string      `db:"number"`
	DueDate      time.Time   `db:"due_date"`
	BalanceDue   types.Money `db:"balance_due"`
}

// StatementDoc is one invoice or payment row for a customer statement.
type StatementDoc struct {
	Date    time.Time   `db:"date"`
	DocType string      `db:"doc_type"`
	Number  string      `db:"number"`
	Amount  types.Money `db:"amount"`
}

// MonthlyRevenue is one month of invoiced and collected totals.
type MonthlyRevenue struct {
	Year      int         `db:"year"`
	Month     int         `db:"month"`
	Invoiced  types.Money `db:"invoiced"`
	Collected types.Money `db:"collected"`
}

// Repository defines the aggregation queries behind the reports.
type Repository interface {
	// AccountBalances sums debit and credit per account from journal
	// lines dated on or before asOf.
	AccountBalances(ctx context.Context, asOf time.Time) ([]AccountBalance, error)

	// AccountActivity sums debit and credit per account within the
	// closed interval [start, end].
	AccountActivity(ctx context.Context, start, end time.Time) ([]AccountBalance, error)

	// OpenInvoices returns non-void invoices with balance due > 0 dated
	// on or before asOf, joined with customer names.
	OpenInvoices(ctx context.Context, asOf time.Time) ([]OpenInvoice, error)

	// CustomerDocs returns invoices (positive amount) and payments
	// (negative amount) of one customer within [start, end], ordered by
	// date then number.
	CustomerDocs(ctx context.Context, customerID id.ID, start, end time.Time) ([]StatementDoc, error)

	// CustomerBalanceBefore returns invoiced minus paid for one
	// customer over all documents dated strictly before the date.
	CustomerBalanceBefore(ctx context.Context, customerID id.ID, before time.Time) (types.Money, error)

	// RevenueByMonth returns per-month invoiced and collected totals
	// within [start, end].
	RevenueByMonth(ctx context.Context, start, end time.Time) ([]MonthlyRevenue, error)

	// CustomerName resolves a customer's display name.
	CustomerName(ctx context.Context, customerID id.ID) (string, error)
}
